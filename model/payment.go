package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Trạng thái thanh toán
const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusCompleted  = "COMPLETED"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusRefunded   = "REFUNDED"
)

var (
	// ErrInvalidTransition: chuyển trạng thái không có trong bảng.
	ErrInvalidTransition = errors.New("chuyển trạng thái thanh toán không hợp lệ")
	// ErrStaleOutcome: callback "thành công" đến sau khi payment đã FAILED.
	// FAILED chỉ được mở lại bằng cách khởi tạo thanh toán mới.
	ErrStaleOutcome = errors.New("kết quả thanh toán đến muộn, giao dịch đã kết thúc")
)

// paymentTransitions: các chuyển trạng thái hợp lệ của Payment.
// COMPLETED chỉ đạt được đúng một lần; REFUNDED là thao tác quản trị.
var paymentTransitions = map[string][]string{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusProcessing: {PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusFailed:     {PaymentStatusPending},
	PaymentStatusCompleted:  {PaymentStatusRefunded},
	PaymentStatusRefunded:   {},
}

// Payment: một đơn hàng chỉ có một bản ghi thanh toán, khởi tạo lại sẽ
// ghi đè bản ghi cũ thay vì tạo mới.
type Payment struct {
	DTO
	OrderId uint  `gorm:"not null;uniqueIndex" json:"orderId"`
	Order   Order `gorm:"foreignKey:OrderId" json:"-"`

	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status string          `gorm:"default:PENDING" json:"status"`
	Method string          `json:"method"` // MOMO, VNPAY

	// TransactionId: khoá đối soát với gateway, duy nhất và cố định
	// sau khi gán, dùng để tra cứu khi webhook gọi về.
	TransactionId string `gorm:"unique;size:64" json:"transactionId"`

	PaymentUrl  string     `json:"paymentUrl"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// CanTransition kiểm tra chuyển trạng thái theo bảng paymentTransitions.
func (p *Payment) CanTransition(target string) bool {
	for _, next := range paymentTransitions[p.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// ApplyOutcome áp kết quả từ gateway lên trạng thái thanh toán.
// Trả về changed=false khi callback lặp lại không làm thay đổi gì
// (đã COMPLETED nhận thêm "thành công", đã FAILED nhận thêm "thất bại").
// Hàm thuần, không chạm DB; caller chịu trách nhiệm lưu trong transaction.
func (p *Payment) ApplyOutcome(succeeded bool) (changed bool, err error) {
	if succeeded {
		if p.Status == PaymentStatusCompleted {
			return false, nil
		}
		if !p.CanTransition(PaymentStatusCompleted) {
			return false, ErrStaleOutcome
		}
		now := time.Now()
		p.Status = PaymentStatusCompleted
		p.PaymentDate = &now
		return true, nil
	}

	if p.Status == PaymentStatusFailed {
		return false, nil
	}
	if p.Status == PaymentStatusCompleted || p.Status == PaymentStatusRefunded {
		// Không hạ cấp giao dịch đã hoàn tất.
		return false, nil
	}
	if !p.CanTransition(PaymentStatusFailed) {
		return false, ErrInvalidTransition
	}
	p.Status = PaymentStatusFailed
	return true, nil
}

// ResetForRetry đưa payment về PENDING với mã giao dịch và URL mới
// khi khách khởi tạo lại thanh toán.
func (p *Payment) ResetForRetry(transactionId, paymentUrl, method string, amount decimal.Decimal) error {
	if p.Status != PaymentStatusPending && !p.CanTransition(PaymentStatusPending) {
		return ErrInvalidTransition
	}
	p.Status = PaymentStatusPending
	p.TransactionId = transactionId
	p.PaymentUrl = paymentUrl
	p.Method = method
	p.Amount = amount
	p.PaymentDate = nil
	return nil
}

type CreatePaymentInput struct {
	OrderId uint   `validate:"required,gt=0" json:"orderId"`
	Method  string `validate:"required,oneof=MOMO VNPAY" json:"method"`
}
