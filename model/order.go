package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trạng thái đơn hàng
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusFailed    = "FAILED"
)

// Phương thức thanh toán
const (
	PaymentMethodMoMo  = "MOMO"
	PaymentMethodVNPay = "VNPAY"
)

// orderTransitions: các chuyển trạng thái hợp lệ của Order.
// COMPLETED và CANCELLED là trạng thái kết thúc.
// FAILED -> PENDING chỉ xảy ra khi khách khởi tạo lại thanh toán.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusConfirmed: {OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusFailed:    {OrderStatusPending, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

type Order struct {
	DTO
	PublicCode    string          `gorm:"unique;size:20" json:"publicCode"` // Mã đơn hàng công khai (ORD-XXXXXX)
	CustomerId    uint            `gorm:"not null;index" json:"customerId"`
	Customer      Customer        `gorm:"foreignKey:CustomerId" json:"-"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	Status        string          `gorm:"default:PENDING" json:"status"`
	PaymentMethod string          `json:"paymentMethod"` // MOMO, VNPAY
	Note          string          `json:"note"`

	Items []OrderItem `gorm:"foreignKey:OrderId" json:"items"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// OrderItem chỉ được tạo cùng đơn hàng, giá được chốt tại thời điểm tạo.
type OrderItem struct {
	DTO
	OrderId uint            `gorm:"not null;index" json:"orderId"`
	GameId  uint            `gorm:"not null" json:"gameId"`
	Game    Game            `gorm:"foreignKey:GameId" json:"game"`
	Price   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
}

// CanTransition kiểm tra chuyển trạng thái theo bảng orderTransitions.
func (o *Order) CanTransition(target string) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal: đơn hàng đã kết thúc, không nhận thêm cập nhật từ gateway.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

type CreateOrderInput struct {
	GameIds []uint `validate:"required,min=1,dive,gt=0" json:"gameIds"`
	Note    string `json:"note"`
}
