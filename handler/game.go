package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"game_store/constants"
	"game_store/database"
	"game_store/helper"
	"game_store/model"
	"game_store/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetGames: danh sách game public, filter theo từ khoá/thể loại/tag/giá.
func GetGames(c *fiber.Ctx) error {
	db := database.DB

	filterInput := new(model.FilterGame)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Game{}).Where("games.active = true")
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", key, key)
	}
	if filterInput.CategoryId != nil {
		condition = condition.
			Joins("JOIN game_categories ON game_categories.game_id = games.id").
			Where("game_categories.category_id = ?", *filterInput.CategoryId)
	}
	if filterInput.TagId != nil {
		condition = condition.
			Joins("JOIN game_tags ON game_tags.game_id = games.id").
			Where("game_tags.tag_id = ?", *filterInput.TagId)
	}
	if filterInput.PriceMin != nil {
		if min, err := decimal.NewFromString(*filterInput.PriceMin); err == nil {
			condition = condition.Where("price >= ?", min)
		}
	}
	if filterInput.PriceMax != nil {
		if max, err := decimal.NewFromString(*filterInput.PriceMax); err == nil {
			condition = condition.Where("price <= ?", max)
		}
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var games []model.Game
	condition.Preload("Developer").
		Preload("Categories").
		Preload("Tags").
		Order("purchase_count DESC, id DESC").
		Find(&games)

	response := &model.ResponseCustom{
		Rows:       games,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetGameBySlug: chi tiết game theo slug, mỗi lượt xem tăng view_count.
func GetGameBySlug(c *fiber.Ctx) error {
	db := database.DB
	slugParam := c.Params("slug")

	var game model.Game
	if err := db.Preload("Developer").
		Preload("Categories").
		Preload("Tags").
		Where("slug = ? AND active = true", slugParam).
		First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db.Model(&model.Game{}).
		Where("id = ?", game.ID).
		Update("view_count", gorm.Expr("view_count + 1"))
	game.ViewCount++

	// Kèm cờ owned nếu khách đã đăng nhập và đã mua
	owned := false
	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId != 0 {
		owned, _ = helper.CustomerOwnsGame(db, claim.CustomerId, game.ID)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"game":  game,
		"owned": owned,
	})
}

func CreateGame(c *fiber.Ctx) error {
	db := database.DB
	gameInput, ok := c.Locals("CreateGame").(model.CreateGameInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	price, err := decimal.NewFromString(gameInput.Price)
	if err != nil || price.IsNegative() {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "price")
	}

	var game model.Game
	err = db.Transaction(func(tx *gorm.DB) error {
		if gameInput.DeveloperId != nil {
			var developer model.Developer
			if err := tx.First(&developer, *gameInput.DeveloperId).Error; err != nil {
				return fmt.Errorf("developer không tồn tại: %w", err)
			}
		}

		var categories []model.Category
		if len(gameInput.CategoryIds) > 0 {
			if err := tx.Where("id IN ?", gameInput.CategoryIds).Find(&categories).Error; err != nil {
				return err
			}
		}

		tags, err := helper.FindOrCreateTags(tx, gameInput.TagNames)
		if err != nil {
			return err
		}

		game = model.Game{
			Title:       gameInput.Title,
			Slug:        helper.GenerateUniqueGameSlug(tx, gameInput.Title),
			Description: gameInput.Description,
			Price:       price,
			DeveloperId: gameInput.DeveloperId,
			Categories:  categories,
			Tags:        tags,
			Active:      true,
		}
		return tx.Create(&game).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, game)
}

func EditGame(c *fiber.Ctx) error {
	db := database.DB
	gameId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}
	gameInput, ok := c.Locals("EditGame").(model.EditGameInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var game model.Game
	if err := db.First(&game, gameId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		copier.CopyWithOption(&game, &gameInput, copier.Option{IgnoreEmpty: true})

		if gameInput.Title != nil {
			game.Slug = helper.GenerateUniqueGameSlug(tx, *gameInput.Title)
		}
		if gameInput.Price != nil {
			price, err := decimal.NewFromString(*gameInput.Price)
			if err != nil || price.IsNegative() {
				return errors.New("giá không hợp lệ")
			}
			game.Price = price
		}
		if gameInput.Active != nil {
			game.Active = *gameInput.Active
		}

		if err := tx.Save(&game).Error; err != nil {
			return err
		}

		if gameInput.CategoryIds != nil {
			var categories []model.Category
			if err := tx.Where("id IN ?", gameInput.CategoryIds).Find(&categories).Error; err != nil {
				return err
			}
			if err := tx.Model(&game).Association("Categories").Replace(categories); err != nil {
				return err
			}
		}
		if gameInput.TagNames != nil {
			tags, err := helper.FindOrCreateTags(tx, gameInput.TagNames)
			if err != nil {
				return err
			}
			if err := tx.Model(&game).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, game)
}

// UploadGameCover tải ảnh bìa lên Cloudinary và lưu URL vào game.
func UploadGameCover(c *fiber.Ctx) error {
	db := database.DB
	gameId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	var game model.Game
	if err := db.First(&game, gameId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	coverFile, err := c.FormFile("cover")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Không thể lấy file ảnh bìa",
		})
	}

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Không thể lấy Cloudinary client",
		})
	}

	coverReader, err := coverFile.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Không thể đọc file ảnh bìa: %s", err.Error()),
		})
	}
	defer coverReader.Close()

	uploadResult, err := cld.Upload.Upload(context.Background(), coverReader, uploader.UploadParams{
		Folder:       "games/covers",
		PublicID:     fmt.Sprintf("game_%d_cover_%d", game.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Không thể tải ảnh lên Cloudinary: %v", err),
		})
	}

	game.ImageUrl = &uploadResult.SecureURL
	if err := db.Save(&game).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"imageUrl": game.ImageUrl,
	})
}

// SetGameFile: admin cập nhật link file tải về của game.
func SetGameFile(c *fiber.Ctx) error {
	db := database.DB
	gameId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	type FileInput struct {
		FileUrl string `json:"fileUrl"`
	}
	input := new(FileInput)
	if err := c.BodyParser(input); err != nil || input.FileUrl == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var game model.Game
	if err := db.First(&game, gameId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	game.FileUrl = &input.FileUrl
	if err := db.Save(&game).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Cập nhật file thành công"})
}

// DownloadGame trả về link tải, chỉ cho khách đã có đơn COMPLETED chứa game.
func DownloadGame(c *fiber.Ctx) error {
	db := database.DB
	gameId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var game model.Game
	if err := db.First(&game, gameId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_NOT_FOUND, err)
	}

	owned, err := helper.CustomerOwnsGame(db, customer.ID, game.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !owned {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.GAME_NOT_OWNED, nil)
	}

	if game.FileUrl == nil || *game.FileUrl == "" {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.GAME_FILE_NOT_SET, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"fileUrl": *game.FileUrl,
	})
}

// GetLibrary: danh sách game khách đã mua (đơn COMPLETED).
func GetLibrary(c *fiber.Ctx) error {
	db := database.DB

	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var games []model.Game
	if err := db.
		Joins("JOIN order_items ON order_items.game_id = games.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.status = ?", customer.ID, model.OrderStatusCompleted).
		Distinct().
		Find(&games).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, games)
}
