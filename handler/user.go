package handler

import (
	"playground_store/constants"
	"playground_store/database"
	"playground_store/model"
	"playground_store/utils"

	"github.com/gofiber/fiber/v2"
)

func GetUsers(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var users model.Users
	if err := utils.ApplyPagination(query, limit, page).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, users, page, limit, count)
}

// GetTeamMembers lists active installation crew for assignment dropdowns.
func GetTeamMembers(c *fiber.Ctx) error {
	var team model.Users
	if err := database.DB.
		Where("role = ? AND is_active = ?", constants.ROLE_INSTALLATION_TEAM, true).
		Order("name asc").
		Find(&team).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, team)
}
