package validate

import (
	"fmt"

	"game_store/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePaymentInput

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
		if input.Method != model.PaymentMethodMoMo && input.Method != model.PaymentMethodVNPay {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phương thức thanh toán không được hỗ trợ",
				"field": "method",
			})
		}

		c.Locals("CreatePayment", input)

		return c.Next()
	}
}
