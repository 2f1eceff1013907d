package database

import (
	"log"

	"game_store/constants"
	"game_store/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123456"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "admin123456"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Hành động"},
		{Name: "Nhập vai"},
		{Name: "Chiến thuật"},
		{Name: "Thể thao"},
		{Name: "Kinh dị"},
		{Name: "Indie"},
	}
	for _, category := range categories {
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed data for category:", category.Name, "error:", err)
		}
	}

	tags := []model.Tag{
		{Name: "singleplayer"},
		{Name: "multiplayer"},
		{Name: "co-op"},
		{Name: "open-world"},
		{Name: "pixel-art"},
	}
	for _, tag := range tags {
		if err := db.Where(model.Tag{Name: tag.Name}).FirstOrCreate(&tag).Error; err != nil {
			log.Println("failed to seed data for tag:", tag.Name, "error:", err)
		}
	}

	developers := []model.Developer{
		{Name: "Studio Rồng Đỏ"},
		{Name: "Pixel Forge"},
	}
	for _, developer := range developers {
		if err := db.Where(model.Developer{Name: developer.Name}).FirstOrCreate(&developer).Error; err != nil {
			log.Println("failed to seed data for developer:", developer.Name, "error:", err)
		}
	}

	games := []model.Game{
		{Title: "Huyền Thoại Rồng", Slug: "huyen-thoai-rong", Description: "Game nhập vai phiêu lưu", Price: decimal.NewFromInt(150000)},
		{Title: "Bóng Đá Đường Phố", Slug: "bong-da-duong-pho", Description: "Game thể thao đối kháng", Price: decimal.NewFromInt(99000)},
		{Title: "Đêm Kinh Hoàng", Slug: "dem-kinh-hoang", Description: "Game kinh dị sinh tồn", Price: decimal.NewFromInt(120000)},
	}
	for _, game := range games {
		if err := db.Where(model.Game{Slug: game.Slug}).FirstOrCreate(&game).Error; err != nil {
			log.Println("failed to seed data for game:", game.Title, "error:", err)
		}
	}
}
