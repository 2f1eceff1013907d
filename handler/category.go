package handler

import (
	"errors"

	"game_store/constants"
	"game_store/database"
	"game_store/model"
	"game_store/utils"

	"github.com/gofiber/fiber/v2"
)

func GetCategories(c *fiber.Ctx) error {
	db := database.DB
	var categories []model.Category
	if err := db.Where("active = true").Order("name ASC").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func GetTags(c *fiber.Ctx) error {
	db := database.DB
	var tags []model.Tag
	if err := db.Order("name ASC").Find(&tags).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tags)
}

func CreateCategory(c *fiber.Ctx) error {
	db := database.DB

	type CategoryInput struct {
		Name string `json:"name"`
	}
	input := new(CategoryInput)
	if err := c.BodyParser(input); err != nil || input.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var existing model.Category
	if err := db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Thể loại đã tồn tại", errors.New("category exists"))
	}

	category := model.Category{Name: input.Name, Active: true}
	if err := db.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

func GetDevelopers(c *fiber.Ctx) error {
	db := database.DB
	var developers []model.Developer
	if err := db.Order("name ASC").Find(&developers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, developers)
}

func CreateDeveloper(c *fiber.Ctx) error {
	db := database.DB

	type DeveloperInput struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Website     *string `json:"website"`
	}
	input := new(DeveloperInput)
	if err := c.BodyParser(input); err != nil || input.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	developer := model.Developer{
		Name:        input.Name,
		Description: input.Description,
		Website:     input.Website,
	}
	if err := db.Create(&developer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, developer)
}
