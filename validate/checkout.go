package validate

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/model"
)

// Checkout rejects malformed checkout payloads before any store access.
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("checkoutInput", input)
		return c.Next()
	}
}
