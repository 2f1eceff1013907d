package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config đọc biến môi trường, ưu tiên file .env nếu có
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Không tìm thấy file .env, dùng biến môi trường hệ thống...")
		}
		loaded = true
	}
	return os.Getenv(key)
}
