package router

import (
	"game_store/handler"
	"game_store/helper"
	"game_store/middleware"
	"game_store/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Webhook gateway nằm ở root, không qua auth (xác thực bằng chữ ký)
	app.Post("/momo/webhook", handler.MoMoWebhook)
	app.Get("/vnpay/ipn", handler.VNPayIPN)
	app.Get("/vnpay/return", handler.VNPayReturn)

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	customer := v1.Group("/customer", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", handler.CustomerLogin)
	customer.Post("/refresh-token", handler.RefreshToken)
	customer.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)
	customer.Get("/me", middleware.Protected(), middleware.OptionalAuth(), handler.GetCurrentCustomer)
	customer.Put("/me", middleware.Protected(), validate.EditCustomer(), handler.EditCustomer)
	customer.Post("/change-password", middleware.Protected(), validate.ChangePasswordCustomer(), handler.ChangePasswordCustomer)

	game := v1.Group("/game", logger.New())
	game.Get("/", middleware.OptionalJWT(), handler.GetGames)
	game.Get("/library", middleware.Protected(), handler.GetLibrary)
	game.Get("/:slug", middleware.OptionalJWT(), handler.GetGameBySlug)
	game.Get("/:gameId/download", middleware.Protected(), validate.GetById("gameId"), handler.DownloadGame)
	game.Get("/:gameId/reviews", validate.GetById("gameId"), handler.GetReviewsByGame)

	category := v1.Group("/category", logger.New())
	category.Get("/", handler.GetCategories)
	category.Get("/tags", handler.GetTags)

	developer := v1.Group("/developer", logger.New())
	developer.Get("/", handler.GetDevelopers)

	review := v1.Group("/review", logger.New())
	review.Post("/", middleware.Protected(), validate.CreateReview(), handler.CreateReview)
	review.Delete("/:reviewId", middleware.Protected(), validate.GetById("reviewId"), handler.DeleteReview)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.Protected(), handler.GetCart)
	cart.Post("/items", middleware.Protected(), validate.AddCartItem(), handler.AddCartItem)
	cart.Delete("/items/:itemId", middleware.Protected(), validate.GetById("itemId"), handler.RemoveCartItem)
	cart.Delete("/", middleware.Protected(), handler.ClearCart)

	order := v1.Group("/order", logger.New())
	order.Post("/", middleware.Protected(), validate.CreateOrder(), handler.CreateOrder)
	order.Post("/checkout", middleware.Protected(), handler.CheckoutCart)
	order.Get("/", middleware.Protected(), handler.GetMyOrders)
	order.Get("/code/:code", middleware.Protected(), handler.GetOrderByCode)
	order.Patch("/:orderId/cancel", middleware.Protected(), validate.GetById("orderId"), handler.CancelOrder)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", middleware.Protected(), validate.CreatePayment(), handler.CreatePayment)
	payment.Get("/:orderId/status", middleware.Protected(), validate.GetById("orderId"), handler.GetPaymentStatus)

	// Websocket trạng thái đơn cho trang checkout
	v1.Get("/order/:id/ws", websocket.New(handler.OrderStatusWebsocket))

	// Khu vực admin
	cld := helper.InitCloudinary()
	admin := v1.Group("/admin", logger.New(), middleware.Protected(), middleware.AdminOnly())
	admin.Get("/customers", handler.GetCustomers)
	admin.Get("/customers/:customerId", validate.GetById("customerId"), handler.GetCustomerById)
	admin.Get("/orders", handler.GetOrders)
	admin.Post("/games", validate.CreateGame(), handler.CreateGame)
	admin.Put("/games/:gameId", validate.GetById("gameId"), validate.EditGame(), handler.EditGame)
	admin.Post("/games/:gameId/cover", validate.GetById("gameId"), func(c *fiber.Ctx) error {
		c.Locals("cld", cld)
		return c.Next()
	}, handler.UploadGameCover)
	admin.Put("/games/:gameId/file", validate.GetById("gameId"), handler.SetGameFile)
	admin.Patch("/payments/:paymentId/refund", validate.GetById("paymentId"), handler.RefundPayment)
	admin.Post("/categories", handler.CreateCategory)
	admin.Post("/developers", handler.CreateDeveloper)
}
