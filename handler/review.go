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

// CreateReview: khách chỉ được đánh giá game đã mua, mỗi game một đánh giá.
func CreateReview(c *fiber.Ctx) error {
	db := database.DB

	reviewInput, ok := c.Locals("CreateReview").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var game model.Game
	if err := db.First(&game, reviewInput.GameId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	owned, err := helper.CustomerOwnsGame(db, customer.ID, game.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !owned {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.REVIEW_NOT_ALLOWED, nil)
	}

	var existing model.Review
	if err := db.Where("customer_id = ? AND game_id = ?", customer.ID, game.ID).
		First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REVIEW_EXISTS, nil)
	}

	review := model.Review{
		CustomerId: customer.ID,
		GameId:     game.ID,
		Rating:     reviewInput.Rating,
		Comment:    reviewInput.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

// GetReviewsByGame: danh sách đánh giá của một game kèm điểm trung bình.
func GetReviewsByGame(c *fiber.Ctx) error {
	db := database.DB
	gameId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	var reviews []model.Review
	if err := db.Preload("Customer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "user_name", "avatar_url")
	}).Where("game_id = ?", gameId).
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var avgRating float64
	db.Model(&model.Review{}).
		Where("game_id = ?", gameId).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"reviews":   reviews,
		"avgRating": avgRating,
	})
}

// DeleteReview: khách xoá đánh giá của chính mình, admin xoá bất kỳ.
func DeleteReview(c *fiber.Ctx) error {
	db := database.DB
	reviewId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	var review model.Review
	if err := db.First(&review, reviewId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	_, isAdmin := helper.GetInfoAccountFromToken(c)
	claim, _ := helper.GetInfoCustomerFromToken(c)
	if !isAdmin && review.CustomerId != claim.CustomerId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không có quyền xoá đánh giá này", nil)
	}

	if err := db.Delete(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Xoá đánh giá thành công"})
}
