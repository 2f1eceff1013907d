package helper

import (
	"log"
	"time"

	"game_store/database"
	"game_store/model"

	"github.com/go-co-op/gocron/v2"
)

var cleanupScheduler gocron.Scheduler

// PurgeExpiredResetTokens xoá token đặt lại mật khẩu đã hết hạn.
func PurgeExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("Lỗi xoá reset token hết hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã xoá %d reset token hết hạn", result.RowsAffected)
	}
}

func StartCleanupScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	cleanupScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 15, 0),
			),
		),
		gocron.NewTask(PurgeExpiredResetTokens),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Cleanup scheduler started (00:15 ICT)")
}

func StopCleanupScheduler() {
	if cleanupScheduler != nil {
		_ = cleanupScheduler.Shutdown()
	}
}
