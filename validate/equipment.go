package validate

import (
	"errors"

	"playground_store/constants"
	"playground_store/model"
	"playground_store/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEquipment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEquipmentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if !utils.IsValidValueOfConstant(input.Category, constants.EquipmentCategories) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown equipment category", errors.New("invalid category"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateEquipment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateEquipmentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if input.Category != nil && !utils.IsValidValueOfConstant(*input.Category, constants.EquipmentCategories) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown equipment category", errors.New("invalid category"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateStock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateStockInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
