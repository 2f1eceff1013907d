package handler

import (
	"errors"
	"time"

	"game_store/constants"
	"game_store/database"
	"game_store/helper"
	"game_store/model"
	"game_store/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateOrder tạo đơn hàng PENDING từ danh sách game. Giá được chốt
// tại thời điểm tạo đơn, các game trùng trong giỏ cũng được dọn luôn.
func CreateOrder(c *fiber.Ctx) error {
	db := database.DB

	orderInput, ok := c.Locals("CreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	// Loại game đã sở hữu khỏi đơn
	gameIds := make([]uint, 0, len(orderInput.GameIds))
	for _, id := range orderInput.GameIds {
		owned, err := helper.CustomerOwnsGame(db, customer.ID, id)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if !owned {
			gameIds = append(gameIds, id)
		}
	}
	if len(gameIds) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_EMPTY_ITEMS, nil)
	}

	order, err := helper.CreateOrderWithItems(db, customer.ID, gameIds, orderInput.Note)
	if err != nil {
		if errors.Is(err, helper.ErrNoValidGames) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_EMPTY_ITEMS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	// Dọn các game vừa đặt khỏi giỏ hàng
	var cart model.Cart
	if err := db.Where("customer_id = ?", customer.ID).First(&cart).Error; err == nil {
		db.Where("cart_id = ? AND game_id IN ?", cart.ID, gameIds).Delete(&model.CartItem{})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CheckoutCart tạo đơn hàng từ toàn bộ giỏ hàng hiện tại.
func CheckoutCart(c *fiber.Ctx) error {
	db := database.DB

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var cart model.Cart
	if err := db.Preload("Items").Where("customer_id = ?", customer.ID).First(&cart).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Giỏ hàng trống", err)
	}
	if len(cart.Items) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Giỏ hàng trống", nil)
	}

	gameIds := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		gameIds = append(gameIds, item.GameId)
	}

	order, err := helper.CreateOrderWithItems(db, customer.ID, gameIds, "")
	if err != nil {
		if errors.Is(err, helper.ErrNoValidGames) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_EMPTY_ITEMS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	db.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{})

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetMyOrders(c *fiber.Ctx) error {
	db := database.DB

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var orders []model.Order
	if err := db.Preload("Items.Game").
		Where("customer_id = ?", customer.ID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderByCode: chi tiết đơn theo mã công khai ORD-XXXXXX.
func GetOrderByCode(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var order model.Order
	if err := db.Preload("Items.Game").
		Where("public_code = ? AND customer_id = ?", code, customer.ID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var payment model.Payment
	db.Where("order_id = ?", order.ID).First(&payment)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":   order,
		"payment": payment,
	})
}

// CancelOrder: khách huỷ đơn khi đơn chưa kết thúc và chưa thanh toán xong.
func CancelOrder(c *fiber.Ctx) error {
	db := database.DB
	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var order model.Order
	if err := db.Where("id = ? AND customer_id = ?", orderId, customer.ID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if !order.CanTransition(model.OrderStatusCancelled) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn hàng không thể huỷ ở trạng thái hiện tại", nil)
	}

	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.CancelledAt = &now
	if err := db.Save(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	PublishOrderStatus(order.ID, order.Status)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrders: danh sách đơn hàng cho admin, filter theo trạng thái.
func GetOrders(c *fiber.Ctx) error {
	db := database.DB

	type FilterOrder struct {
		model.Pagination
		Status     string `json:"status"`
		CustomerId *uint  `json:"customerId"`
	}
	filterInput := new(FilterOrder)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Order{})
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.CustomerId != nil {
		condition = condition.Where("customer_id = ?", *filterInput.CustomerId)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var orders []model.Order
	condition.Preload("Items.Game").
		Preload("Customer").
		Order("id DESC").
		Find(&orders)

	response := &model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
