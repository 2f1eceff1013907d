package helper

import (
	"log"

	"game_store/database"
	"game_store/model"

	"github.com/robfig/cron/v3"
)

var statsScheduler *cron.Cron

// RecomputePurchaseCounts tính lại purchase_count từ các đơn COMPLETED.
// Lưới an toàn cho trường hợp counter bị lệch (restore DB, sửa tay...).
func RecomputePurchaseCounts() {
	err := database.DB.Model(&model.Game{}).
		Where("1 = 1").
		Update("purchase_count", database.DB.Model(&model.OrderItem{}).
			Select("COUNT(*)").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("order_items.game_id = games.id AND orders.status = ?", model.OrderStatusCompleted)).
		Error

	if err != nil {
		log.Printf("Lỗi tính lại lượt mua: %v", err)
		return
	}
	log.Println("Đã tính lại purchase_count từ đơn COMPLETED")
}

func StartStatsScheduler() {
	statsScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy 01:00 mỗi ngày
	_, err := statsScheduler.AddFunc("0 1 * * *", RecomputePurchaseCounts)
	if err != nil {
		log.Printf("Lỗi khởi tạo stats scheduler: %v", err)
		return
	}

	statsScheduler.Start()
	log.Println("Stats scheduler đã khởi động (01:00 mỗi ngày)")
}

func StopStatsScheduler() {
	if statsScheduler != nil {
		statsScheduler.Stop()
	}
}
