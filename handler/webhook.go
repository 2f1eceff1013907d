package handler

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"game_store/config"
	"game_store/database"
	"game_store/helper"
	"game_store/model"
	"game_store/utils"

	"github.com/gofiber/fiber/v2"
)

// firePaymentSideEffects bắn các side effect sau khi trạng thái THỰC SỰ
// thay đổi: websocket cho trang checkout, email xác nhận khi thành công.
// Caller chỉ gọi khi ApplyPaymentOutcome trả về changed=true, nhờ đó
// webhook gửi lại N lần chỉ có đúng một email.
func firePaymentSideEffects(order *model.Order, succeeded bool) {
	PublishOrderStatus(order.ID, order.Status)

	if !succeeded || order.Customer.Email == "" {
		return
	}

	games := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		games = append(games, item.Game.Title)
	}

	utils.SendPaymentSuccessEmail(order.Customer.Email, utils.PaymentSuccessData{
		OrderCode:     order.PublicCode,
		Games:         games,
		TotalAmount:   order.TotalAmount.StringFixed(0),
		PaymentMethod: order.PaymentMethod,
		LibraryLink:   config.Config("FRONTEND_URL") + "/library",
	})
}

// MoMoWebhook nhận IPN từ MoMo (server-to-server, JSON).
// Idempotent dưới at-least-once delivery: body gửi lại N lần cho cùng
// trạng thái cuối và tối đa một lần side effect.
func MoMoWebhook(c *fiber.Ctx) error {
	var payload model.MoMoWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Malformed payload"})
	}
	if payload.OrderId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Malformed payload"})
	}

	momo := NewMoMo()
	if !momo.VerifyWebhookSignature(payload) {
		// Log chi tiết nội bộ, trả về message chung chung cho caller
		log.Printf("[MoMo Webhook] Sai chữ ký cho orderId=%s", payload.OrderId)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid signature"})
	}

	succeeded := payload.ResultCode == 0
	payment, order, changed, err := helper.ApplyPaymentOutcome(database.DB, payload.OrderId, succeeded)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrPaymentNotFound):
			log.Printf("[MoMo Webhook] Không tìm thấy Payment với orderId=%s", payload.OrderId)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Payment not found"})
		case errors.Is(err, helper.ErrOrderCancelled), errors.Is(err, model.ErrStaleOutcome):
			// Đơn đã kết thúc: ack để gateway ngừng retry, không đổi trạng thái
			log.Printf("[MoMo Webhook] Bỏ qua callback muộn cho orderId=%s: %v", payload.OrderId, err)
			return c.JSON(fiber.Map{"message": "Transaction already finalized"})
		default:
			log.Printf("[MoMo Webhook] Lỗi xử lý orderId=%s: %v", payload.OrderId, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
		}
	}

	if changed {
		firePaymentSideEffects(order, succeeded)
	}

	log.Printf("[MoMo Webhook] Payment %s -> %s", payload.OrderId, payment.Status)
	return c.JSON(fiber.Map{"message": "Payment updated"})
}

// VNPayIPN nhận IPN từ VNPay (server-to-server, GET query).
// Response theo format VNPay: 00 = đã xử lý, 01 = không tìm thấy đơn,
// 02 = đơn đã được xác nhận trước đó, 97 = sai chữ ký.
func VNPayIPN(c *fiber.Ctx) error {
	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}

	vnpay := NewVNPay()
	result := vnpay.VerifyCallback(query)
	if !result.IsValid {
		log.Printf("[VNPay IPN] Chữ ký không hợp lệ: %s", result.Message)
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid Signature"})
	}

	payment, order, changed, err := helper.ApplyPaymentOutcome(database.DB, result.TxnRef, result.IsSuccess)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrPaymentNotFound):
			return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
		case errors.Is(err, helper.ErrOrderCancelled), errors.Is(err, model.ErrStaleOutcome):
			log.Printf("[VNPay IPN] Bỏ qua callback muộn cho txnRef=%s: %v", result.TxnRef, err)
			return c.JSON(fiber.Map{"RspCode": "02", "Message": "Order already confirmed"})
		default:
			log.Printf("[VNPay IPN] Lỗi xử lý txnRef=%s: %v", result.TxnRef, err)
			return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
		}
	}

	if changed {
		firePaymentSideEffects(order, result.IsSuccess)
	}

	log.Printf("[VNPay IPN] Payment %s -> %s", result.TxnRef, payment.Status)
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm Success"})
}

// VNPayReturn xử lý redirect trình duyệt sau khi khách thanh toán xong.
// Cũng áp kết quả (idempotent) vì IPN có thể đến sau, rồi đưa khách về
// trang cảm ơn của frontend kèm mã đơn và kết quả.
func VNPayReturn(c *fiber.Ctx) error {
	frontend := config.Config("FRONTEND_URL")

	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}

	vnpay := NewVNPay()
	result := vnpay.VerifyCallback(query)
	if !result.IsValid {
		log.Printf("[VNPay Return] Chữ ký không hợp lệ: %s", result.Message)
		return c.Redirect(frontend + "/thank-you?status=invalid")
	}

	_, order, changed, err := helper.ApplyPaymentOutcome(database.DB, result.TxnRef, result.IsSuccess)
	if err != nil {
		if errors.Is(err, helper.ErrPaymentNotFound) {
			return c.Redirect(frontend + "/thank-you?status=notfound")
		}
		// Callback muộn trên đơn đã kết thúc: vẫn đưa khách về trang cảm ơn
		log.Printf("[VNPay Return] txnRef=%s: %v", result.TxnRef, err)
		return c.Redirect(frontend + "/thank-you?status=finalized")
	}

	if changed {
		firePaymentSideEffects(order, result.IsSuccess)
	}

	outcome := "failed"
	if result.IsSuccess {
		outcome = "success"
	}
	return c.Redirect(fmt.Sprintf("%s/thank-you?orderId=%s&status=%s", frontend, order.PublicCode, outcome))
}
