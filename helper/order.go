package helper

import (
	"errors"
	"fmt"
	"math/rand"

	"game_store/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoValidGames: danh sách gameIds không có game nào đang active.
var ErrNoValidGames = errors.New("không có game hợp lệ trong đơn hàng")

const orderCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GeneratePublicOrderCode(tx *gorm.DB) string {
	for {
		b := make([]byte, 6)
		for i := range b {
			b[i] = orderCodeChars[rand.Intn(len(orderCodeChars))]
		}
		code := fmt.Sprintf("ORD-%s", string(b))

		var count int64
		tx.Model(&model.Order{}).Where("public_code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

// ComputeCartTotal cộng giá hiện tại của các game trong giỏ.
func ComputeCartTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Game.Price)
	}
	return total
}

// ComputeOrderTotal cộng giá đã chốt của từng item.
func ComputeOrderTotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// CreateOrderWithItems tạo Order + OrderItems trong một transaction.
// Giá được copy từ Game vào OrderItem tại thời điểm tạo, nên thay đổi
// giá game sau này không ảnh hưởng đơn hàng cũ.
func CreateOrderWithItems(db *gorm.DB, customerId uint, gameIds []uint, note string) (*model.Order, error) {
	var order *model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var games []model.Game
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND active = true", gameIds).
			Find(&games).Error; err != nil {
			return err
		}
		if len(games) == 0 {
			return ErrNoValidGames
		}

		// Giữ thứ tự game theo danh sách khách gửi lên
		gameById := make(map[uint]model.Game, len(games))
		for _, g := range games {
			gameById[g.ID] = g
		}

		items := make([]model.OrderItem, 0, len(gameIds))
		for _, id := range gameIds {
			g, ok := gameById[id]
			if !ok {
				continue
			}
			items = append(items, model.OrderItem{
				GameId: g.ID,
				Price:  g.Price,
			})
		}
		if len(items) == 0 {
			return ErrNoValidGames
		}

		newOrder := model.Order{
			PublicCode:  GeneratePublicOrderCode(tx),
			CustomerId:  customerId,
			TotalAmount: ComputeOrderTotal(items),
			Status:      model.OrderStatusPending,
			Note:        note,
			Items:       items,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return err
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CustomerOwnsGame kiểm tra khách đã có đơn COMPLETED chứa game chưa,
// dùng cho quyền tải file game.
func CustomerOwnsGame(db *gorm.DB, customerId, gameId uint) (bool, error) {
	var count int64
	err := db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.status = ? AND order_items.game_id = ?",
			customerId, model.OrderStatusCompleted, gameId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
