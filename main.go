package main

import (
	"log"
	"time"

	"game_store/config"
	"game_store/database"
	"game_store/helper"
	"game_store/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // cho phép upload tối đa 100MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartCleanupScheduler()
	defer helper.StopCleanupScheduler()
	helper.StartStatsScheduler()
	defer helper.StopStatsScheduler()

	// Thanh toán PENDING quá 15 phút coi như thất bại
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			helper.ExpireStalePayments(database.DB, 15*time.Minute)
		}
	}()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
