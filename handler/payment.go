package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"game_store/constants"
	"game_store/database"
	"game_store/helper"
	"game_store/model"
	"game_store/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment khởi tạo thanh toán cho một đơn hàng PENDING/FAILED.
// Số tiền luôn lấy từ tổng đơn hàng phía server, không nhận từ client.
func CreatePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("CreatePayment").(model.CreatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	db := database.DB

	order, err := helper.PrepareInitiation(db, input.OrderId, customer.ID)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		case errors.Is(err, helper.ErrAlreadyPaid):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_PAID, err)
		case errors.Is(err, helper.ErrOrderCancelled):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn hàng đã bị huỷ", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	txnRef := helper.NewTransactionRef(order.ID)
	amount := order.TotalAmount.IntPart() // VND nguyên
	orderInfo := fmt.Sprintf("Thanh toán đơn hàng %s - Game Store", order.PublicCode)

	// Gọi gateway TRƯỚC khi ghi Payment: không commit trạng thái nào
	// nếu gateway chưa chấp nhận yêu cầu.
	var paymentUrl string
	switch input.Method {
	case model.PaymentMethodMoMo:
		momo := NewMoMo()
		resp, err := momo.CreatePayment(amount, txnRef, orderInfo)
		if err != nil {
			if errors.Is(err, ErrGatewayUnavailable) {
				return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.GATEWAY_UNAVAILABLE, err)
			}
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Khởi tạo thanh toán MoMo thất bại", err)
		}
		paymentUrl = resp.PayUrl
	case model.PaymentMethodVNPay:
		vnpay := NewVNPay()
		paymentUrl, err = vnpay.BuildPaymentUrl(model.VNPayPaymentRequest{
			Amount:    amount,
			OrderInfo: orderInfo,
			TxnRef:    txnRef,
			IPAddr:    c.IP(),
		})
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo payment URL", err)
		}
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PAYMENT_INVALID_METHOD, nil)
	}

	payment, err := helper.InitiatePayment(db, order.ID, input.Method, txnRef, paymentUrl)
	if err != nil {
		if errors.Is(err, helper.ErrAlreadyPaid) {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_PAID, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// QR cho trang checkout (quét bằng app ngân hàng/ví)
	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(paymentUrl, 300); err != nil {
		log.Printf("Lỗi tạo QR cho giao dịch %s: %v", txnRef, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return c.JSON(fiber.Map{
		"message":       "Tạo thanh toán thành công",
		"paymentId":     payment.ID,
		"transactionId": payment.TransactionId,
		"paymentUrl":    payment.PaymentUrl,
		"status":        payment.Status,
		"qrCode":        qrBase64,
	})
}

// RefundPayment: thao tác quản trị, chuyển thanh toán COMPLETED sang
// REFUNDED. Không gọi gateway, chỉ ghi nhận trạng thái sau khi hoàn tiền
// thủ công trên cổng thanh toán.
func RefundPayment(c *fiber.Ctx) error {
	db := database.DB
	paymentId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	var payment model.Payment
	if err := db.First(&payment, paymentId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, err)
	}

	if !payment.CanTransition(model.PaymentStatusRefunded) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Chỉ hoàn tiền được giao dịch đã hoàn tất", nil)
	}

	payment.Status = model.PaymentStatusRefunded
	if err := db.Save(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	log.Printf("Đã hoàn tiền giao dịch %s (payment %d)", payment.TransactionId, payment.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

// GetPaymentStatus trả về trạng thái thanh toán của đơn để trang
// checkout polling.
func GetPaymentStatus(c *fiber.Ctx) error {
	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	db := database.DB

	var order model.Order
	if err := db.Where("id = ? AND customer_id = ?", orderId, customer.ID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	var payment model.Payment
	if err := db.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
				"orderStatus":   order.Status,
				"paymentStatus": nil,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderStatus":   order.Status,
		"paymentStatus": payment.Status,
		"transactionId": payment.TransactionId,
		"amount":        payment.Amount,
		"method":        payment.Method,
		"paymentDate":   payment.PaymentDate,
	})
}
