package handler

import (
	"errors"

	"game_store/constants"
	"game_store/database"
	"game_store/helper"
	"game_store/model"
	"game_store/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// getOrCreateCart: mỗi khách có đúng một giỏ hàng.
func getOrCreateCart(db *gorm.DB, customerId uint) (*model.Cart, error) {
	var cart model.Cart
	err := db.Where(model.Cart{CustomerId: customerId}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func GetCart(c *fiber.Ctx) error {
	db := database.DB

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	cart, err := getOrCreateCart(db, customer.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Preload("Items.Game").First(&cart, cart.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	total := helper.ComputeCartTotal(cart.Items)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"cart":  cart,
		"total": total,
	})
}

func AddCartItem(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("AddCartItem").(model.AddCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var game model.Game
	if err := db.Where("id = ? AND active = true", input.GameId).First(&game).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	// Game đã mua rồi thì không cho thêm vào giỏ
	owned, err := helper.CustomerOwnsGame(db, customer.ID, game.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if owned {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Bạn đã sở hữu game này", nil)
	}

	cart, err := getOrCreateCart(db, customer.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var existing model.CartItem
	if err := db.Where("cart_id = ? AND game_id = ?", cart.ID, game.ID).
		First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Game đã có trong giỏ hàng", nil)
	}

	item := model.CartItem{CartId: cart.ID, GameId: game.ID}
	if err := db.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func RemoveCartItem(c *fiber.Ctx) error {
	db := database.DB
	itemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var item model.CartItem
	if err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_id = ?", itemId, customer.ID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := db.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xoá khỏi giỏ hàng"})
}

func ClearCart(c *fiber.Ctx) error {
	db := database.DB

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var cart model.Cart
	if err := db.Where("customer_id = ?", customer.ID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Giỏ hàng trống"})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xoá toàn bộ giỏ hàng"})
}
