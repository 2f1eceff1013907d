package helper

import (
	"errors"
	"fmt"
	"log"
	"time"

	"game_store/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrOrderNotFound: đơn hàng không tồn tại hoặc không thuộc về khách.
	ErrOrderNotFound = errors.New("đơn hàng không tồn tại")
	// ErrAlreadyPaid: đơn hàng đã có thanh toán COMPLETED, không được khởi tạo lại.
	ErrAlreadyPaid = errors.New("đơn hàng đã được thanh toán")
	// ErrPaymentNotFound: không có Payment khớp transaction_id từ gateway.
	ErrPaymentNotFound = errors.New("không tìm thấy giao dịch thanh toán")
	// ErrOrderCancelled: đơn đã bị huỷ, webhook thành công đến muộn bị từ chối.
	ErrOrderCancelled = errors.New("đơn hàng đã bị huỷ")
)

// NewTransactionRef sinh mã đối soát duy nhất cho một lần khởi tạo thanh toán.
func NewTransactionRef(orderId uint) string {
	return fmt.Sprintf("GS%d-%s", orderId, uuid.NewString()[:8])
}

// PrepareInitiation nạp đơn hàng và chặn sớm các đơn không thể thanh toán.
// Amount luôn lấy từ order.TotalAmount, không tin amount phía client.
func PrepareInitiation(db *gorm.DB, orderId, customerId uint) (*model.Order, error) {
	var order model.Order
	if err := db.Preload("Items").Preload("Items.Game").
		Where("id = ? AND customer_id = ?", orderId, customerId).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status == model.OrderStatusCompleted {
		return nil, ErrAlreadyPaid
	}
	if order.Status == model.OrderStatusCancelled {
		return nil, ErrOrderCancelled
	}

	var payment model.Payment
	err := db.Where("order_id = ?", order.ID).First(&payment).Error
	if err == nil && payment.Status == model.PaymentStatusCompleted {
		return nil, ErrAlreadyPaid
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &order, nil
}

// InitiatePayment ghi nhận thanh toán PENDING sau khi gateway đã chấp nhận
// yêu cầu khởi tạo. Một đơn chỉ có một bản ghi Payment: nếu đã tồn tại thì
// reset về PENDING với mã giao dịch và URL mới. Chạy trong transaction với
// khoá hàng để không đua với webhook của lần khởi tạo trước.
func InitiatePayment(db *gorm.DB, orderId uint, method, transactionRef, paymentUrl string) (*model.Payment, error) {
	var payment *model.Payment

	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		var existing model.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", order.ID).First(&existing).Error

		switch {
		case err == nil:
			// Webhook của lần trước có thể đã hoàn tất trong lúc gọi gateway.
			if existing.Status == model.PaymentStatusCompleted {
				return ErrAlreadyPaid
			}
			if err := existing.ResetForRetry(transactionRef, paymentUrl, method, order.TotalAmount); err != nil {
				return err
			}
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			payment = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			newPayment := model.Payment{
				OrderId:       order.ID,
				Amount:        order.TotalAmount,
				Status:        model.PaymentStatusPending,
				Method:        method,
				TransactionId: transactionRef,
				PaymentUrl:    paymentUrl,
			}
			if err := tx.Create(&newPayment).Error; err != nil {
				return err
			}
			payment = &newPayment
		default:
			return err
		}

		// Đơn FAILED được mở lại khi khách thanh toán lại
		updates := map[string]any{"payment_method": method}
		if order.Status == model.OrderStatusFailed {
			updates["status"] = model.OrderStatusPending
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ApplyPaymentOutcome áp kết quả đối soát từ gateway theo transaction_id.
// Idempotent: cùng một callback gửi lại N lần cho cùng kết quả cuối và
// changed=true đúng một lần duy nhất — caller chỉ bắn side effect khi
// changed=true. Toàn bộ chạy dưới khoá hàng của Payment và Order.
func ApplyPaymentOutcome(db *gorm.DB, transactionId string, succeeded bool) (*model.Payment, *model.Order, bool, error) {
	var (
		payment model.Payment
		order   model.Order
		changed bool
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", transactionId).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, payment.OrderId).Error; err != nil {
			return err
		}

		// CANCELLED là trạng thái kết thúc: webhook thành công đến muộn
		// không được phép hoàn tất đơn đã huỷ.
		if order.Status == model.OrderStatusCancelled {
			if succeeded {
				return ErrOrderCancelled
			}
			return nil
		}

		var err error
		changed, err = payment.ApplyOutcome(succeeded)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if succeeded {
			if order.Status != model.OrderStatusCompleted {
				now := time.Now()
				order.Status = model.OrderStatusCompleted
				order.CompletedAt = &now
				if err := tx.Save(&order).Error; err != nil {
					return err
				}
			}
			// Cập nhật lượt mua cho các game trong đơn
			if err := tx.Model(&model.Game{}).
				Where("id IN (?)", tx.Model(&model.OrderItem{}).
					Select("game_id").Where("order_id = ?", order.ID)).
				Update("purchase_count", gorm.Expr("purchase_count + 1")).Error; err != nil {
				return err
			}
		} else {
			if order.CanTransition(model.OrderStatusFailed) {
				order.Status = model.OrderStatusFailed
				if err := tx.Save(&order).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, false, err
	}

	// Nạp lại đơn kèm khách hàng và items cho side effect (email, websocket)
	if changed {
		db.Preload("Customer").Preload("Items").Preload("Items.Game").
			First(&order, order.ID)
	}

	return &payment, &order, changed, nil
}

// ExpireStalePayments huỷ các thanh toán PENDING quá hạn và trả đơn về FAILED
// để khách có thể khởi tạo lại. Chạy định kỳ từ main.
func ExpireStalePayments(db *gorm.DB, ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	var payments []model.Payment
	if err := db.Where("status = ? AND updated_at < ?", model.PaymentStatusPending, cutoff).
		Find(&payments).Error; err != nil {
		log.Printf("Lỗi truy vấn thanh toán quá hạn: %v", err)
		return
	}

	for _, p := range payments {
		if _, _, _, err := ApplyPaymentOutcome(db, p.TransactionId, false); err != nil {
			log.Printf("Lỗi huỷ thanh toán quá hạn %s: %v", p.TransactionId, err)
		}
	}
}
