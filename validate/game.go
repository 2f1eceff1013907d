package validate

import (
	"fmt"

	"game_store/model"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func CreateGame() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateGameInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		price, err := decimal.NewFromString(input.Price)
		if err != nil || price.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Giá không hợp lệ",
				"field": "price",
			})
		}

		c.Locals("CreateGame", input)

		return c.Next()
	}
}

func EditGame() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditGameInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}
		if input.Price != nil {
			price, err := decimal.NewFromString(*input.Price)
			if err != nil || price.IsNegative() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Giá không hợp lệ",
					"field": "price",
				})
			}
		}

		c.Locals("EditGame", input)

		return c.Next()
	}
}
