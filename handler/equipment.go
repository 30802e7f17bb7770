package handler

import (
	"errors"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/helper"
	"playground_store/model"
	"playground_store/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

var equipmentSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
}

func GetEquipment(c *fiber.Ctx) error {
	db := database.DB
	query := db.Model(&model.Equipment{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isAvailable := c.Query("isAvailable"); isAvailable != "" {
		query = query.Where("is_available = ?", isAvailable == "true")
	}
	if minPrice := c.QueryFloat("minPrice"); minPrice > 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.QueryFloat("maxPrice"); maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	sortColumn, ok := equipmentSortColumns[c.Query("sortBy")]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "desc"
	if c.Query("order") == "asc" {
		direction = "asc"
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var equipment []model.Equipment
	if err := utils.ApplyPagination(query, limit, page).
		Order(sortColumn + " " + direction).
		Find(&equipment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, equipment, page, limit, count)
}

func GetEquipmentCategories(c *fiber.Ctx) error {
	db := database.DB

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	if err := db.Model(&model.Equipment{}).
		Select("category, count(*) as count").
		Where("is_available = ?", true).
		Group("category").
		Find(&counts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	countByCategory := make(map[string]int64, len(counts))
	for _, row := range counts {
		countByCategory[row.Category] = row.Count
	}

	data := make([]fiber.Map, 0, len(constants.EquipmentCategories))
	for _, category := range constants.EquipmentCategories {
		data = append(data, fiber.Map{
			"name":  category,
			"count": countByCategory[category],
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, data)
}

func GetEquipmentBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var equipment model.Equipment
	if err := database.DB.Where("slug = ?", slugParam).First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EQUIPMENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, equipment)
}

func CreateEquipment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEquipmentInput)
	db := database.DB

	newEquipment := new(model.Equipment)
	copier.Copy(&newEquipment, &input)
	newEquipment.Slug = helper.GenerateUniqueEquipmentSlug(db, input.Name)
	newEquipment.IsAvailable = input.Stock > 0
	if input.InstallationRequired != nil {
		newEquipment.InstallationRequired = *input.InstallationRequired
	} else {
		newEquipment.InstallationRequired = true
	}

	if err := db.Create(&newEquipment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusCreated, "Equipment created", newEquipment)
}

func UpdateEquipment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateEquipmentInput)
	equipmentId := uint(c.Locals("inputId").(int))
	db := database.DB

	var equipment model.Equipment
	if err := db.First(&equipment, equipmentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EQUIPMENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	renamed := input.Name != nil && *input.Name != equipment.Name

	copier.CopyWithOption(&equipment, &input, copier.Option{IgnoreEmpty: true})
	if renamed {
		equipment.Slug = helper.GenerateUniqueEquipmentSlug(db, equipment.Name)
	}

	if err := db.Save(&equipment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Equipment updated", equipment)
}

// UpdateEquipmentStock is the admin restock path; order placement and
// cancellation are the only other writers of stock.
func UpdateEquipmentStock(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateStockInput)
	equipmentId := uint(c.Locals("inputId").(int))
	db := database.DB

	var equipment model.Equipment
	if err := db.First(&equipment, equipmentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EQUIPMENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	equipment.Stock = input.Stock
	equipment.IsAvailable = input.Stock > 0

	if err := db.Save(&equipment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Stock updated", equipment)
}

func DeleteEquipment(c *fiber.Ctx) error {
	equipmentId := uint(c.Locals("inputId").(int))
	db := database.DB

	res := db.Delete(&model.Equipment{}, equipmentId)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EQUIPMENT_NOT_FOUND, nil)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Equipment deleted", nil)
}
