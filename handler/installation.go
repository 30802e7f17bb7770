package handler

import (
	"errors"
	"strings"
	"time"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/helper"
	"playground_store/model"
	"playground_store/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newInstallationPublicCode() string {
	return "INS-" + strings.ToUpper(uuid.NewString()[:8])
}

// ScheduleInstallation books a crew for a delivered order. Each order gets at
// most one installation; the equipment list is snapshotted from the order's
// line items so later order edits cannot shift the crew's worksheet.
func ScheduleInstallation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ScheduleInstallationInput)

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	db := database.DB

	var order model.Order
	if err := db.Preload("Items").First(&order, input.OrderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var existing int64
	if err := db.Model(&model.Installation{}).
		Where("order_id = ?", order.ID).
		Count(&existing).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Installation already scheduled for this order", nil)
	}

	var team model.User
	if err := db.First(&team, input.TeamId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if team.Role != constants.ROLE_INSTALLATION_TEAM {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assigned user is not an installation team member", nil)
	}

	equipmentList := make([]model.InstallationEquipment, 0, len(order.Items))
	for _, item := range order.Items {
		equipmentList = append(equipmentList, model.InstallationEquipment{
			EquipmentId:        item.EquipmentId,
			Name:               item.Name,
			Quantity:           item.Quantity,
			InstallationStatus: constants.EQUIPMENT_ITEM_PENDING,
		})
	}

	location := input.Location
	if location == nil {
		location = &model.InstallationLocation{Address: order.ShippingAddress}
	}

	tx := db.Begin()

	newInstallation := model.Installation{
		PublicCode:        newInstallationPublicCode(),
		OrderId:           order.ID,
		TeamId:            team.ID,
		CustomerId:        order.UserId,
		ScheduledDate:     input.ScheduledDate,
		ScheduledTime:     input.ScheduledTime,
		Status:            constants.INSTALLATION_SCHEDULED,
		Location:          location,
		EquipmentList:     equipmentList,
		Notes:             input.Notes,
		EstimatedDuration: input.EstimatedDuration,
	}

	if err := tx.Create(&newInstallation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Create(&model.InstallationStatusLog{
		InstallationId: newInstallation.ID,
		Status:         constants.INSTALLATION_SCHEDULED,
		Note:           "installation scheduled",
		At:             helper.Clock.Now(),
		UpdatedBy:      currentUser.ID,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.ChangeOrderStatus(tx, &order, constants.ORDER_INSTALLATION_SCHEDULED, "installation scheduled", currentUser.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishInstallationUpdate(newInstallation.ID, constants.INSTALLATION_SCHEDULED)

	return utils.SuccessMessageResponse(c, fiber.StatusCreated, "Installation scheduled", newInstallation)
}

// GetInstallations lists installations scoped by role: admins see all, crews
// their assignments, customers their own orders' installations.
func GetInstallations(c *fiber.Ctx) error {
	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	query := database.DB.Model(&model.Installation{})
	switch currentUser.Role {
	case constants.ROLE_INSTALLATION_TEAM:
		query = query.Where("team_id = ?", currentUser.ID)
	case constants.ROLE_CUSTOMER:
		query = query.Where("customer_id = ?", currentUser.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var installations model.Installations
	if err := utils.ApplyPagination(query, limit, page).
		Preload("Order").
		Preload("Team").
		Preload("Customer").
		Preload("EquipmentList").
		Order("scheduled_date asc").
		Find(&installations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, installations, page, limit, count)
}

func GetInstallation(c *fiber.Ctx) error {
	installationId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	var installation model.Installation
	if err := database.DB.
		Preload("Order").
		Preload("Team").
		Preload("Customer").
		Preload("EquipmentList").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("at asc") }).
		First(&installation, installationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTALLATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	switch currentUser.Role {
	case constants.ROLE_INSTALLATION_TEAM:
		if installation.TeamId != currentUser.ID {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
		}
	case constants.ROLE_CUSTOMER:
		if installation.CustomerId != currentUser.ID {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, installation)
}

// UpdateInstallationStatus lets the assigned crew (or an admin) move the
// installation through its lifecycle. The assignment check runs before any
// write, so a rejected caller leaves no history behind.
func UpdateInstallationStatus(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateInstallationStatusInput)
	installationId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	tx := database.DB.Begin()

	var installation model.Installation
	if err := tx.First(&installation, installationId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTALLATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if currentUser.Role == constants.ROLE_INSTALLATION_TEAM && installation.TeamId != currentUser.ID {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	if err := helper.ChangeInstallationStatus(tx, &installation, input.Status, input.Note, currentUser.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishInstallationUpdate(installation.ID, installation.Status)

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Installation status updated", installation)
}

// UpdateInstallationEquipmentStatus marks progress on one equipment entry.
// When the last entry completes, the whole installation (and its order) are
// completed automatically.
func UpdateInstallationEquipmentStatus(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateEquipmentStatusInput)
	installationId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	tx := database.DB.Begin()

	var installation model.Installation
	if err := tx.First(&installation, installationId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTALLATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if currentUser.Role == constants.ROLE_INSTALLATION_TEAM && installation.TeamId != currentUser.ID {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	var entry model.InstallationEquipment
	if err := tx.Where("installation_id = ? AND equipment_id = ?", installation.ID, input.EquipmentId).
		First(&entry).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Equipment not found in installation", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&entry).Update("installation_status", input.Status).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	completed, err := helper.CompleteIfAllInstalled(tx, &installation, currentUser.ID)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if completed {
		PublishInstallationUpdate(installation.ID, constants.INSTALLATION_COMPLETED)
	}

	message := "Equipment status updated"
	if completed {
		message = "Equipment status updated, installation completed"
	}
	return utils.SuccessMessageResponse(c, fiber.StatusOK, message, installation)
}

func UpdateTeamNotes(c *fiber.Ctx) error {
	input := c.Locals("input").(model.TeamNotesInput)
	installationId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	db := database.DB

	var installation model.Installation
	if err := db.First(&installation, installationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTALLATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if currentUser.Role == constants.ROLE_INSTALLATION_TEAM && installation.TeamId != currentUser.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	installation.TeamNotes = input.TeamNotes
	if err := db.Model(&installation).Update("team_notes", input.TeamNotes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Team notes updated", installation)
}

// AddCustomerFeedback accepts a rating from the order's customer once the
// installation is completed.
func AddCustomerFeedback(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CustomerFeedbackInput)
	installationId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	db := database.DB

	var installation model.Installation
	if err := db.First(&installation, installationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTALLATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if installation.CustomerId != currentUser.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	if installation.Status != constants.INSTALLATION_COMPLETED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Can only add feedback for completed installations", nil)
	}

	feedback := model.CustomerFeedback{
		Rating:  input.Rating,
		Comment: input.Comment,
		Date:    helper.Clock.Now(),
	}
	installation.CustomerFeedback = &feedback

	if err := db.Model(&installation).Update("customer_feedback", &feedback).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Feedback recorded", installation)
}

// GetTeamSchedule returns the calling crew member's assignments in a date
// window, defaulting to the next 7 days.
func GetTeamSchedule(c *fiber.Ctx) error {
	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	now := helper.Clock.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if fromParam := c.Query("from"); fromParam != "" {
		if parsed, err := time.Parse("2006-01-02", fromParam); err == nil {
			from = parsed
		}
	}
	to := from.AddDate(0, 0, 7)
	if toParam := c.Query("to"); toParam != "" {
		if parsed, err := time.Parse("2006-01-02", toParam); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	var installations model.Installations
	if err := database.DB.
		Where("team_id = ? AND scheduled_date >= ? AND scheduled_date < ?", currentUser.ID, from, to).
		Preload("Order").
		Preload("Customer").
		Preload("EquipmentList").
		Order("scheduled_date asc").
		Find(&installations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, installations)
}

// GetInstallationStats aggregates counts per status plus the average customer
// rating for the admin dashboard.
func GetInstallationStats(c *fiber.Ctx) error {
	db := database.DB

	var total int64
	if err := db.Model(&model.Installation{}).Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := db.Model(&model.Installation{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&byStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	statusCounts := make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	// Feedback lives in a JSON column, so the average is computed in Go.
	var completed model.Installations
	if err := db.Where("status = ? AND customer_feedback IS NOT NULL", constants.INSTALLATION_COMPLETED).
		Find(&completed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	var ratingSum, rated int
	for _, inst := range completed {
		if inst.CustomerFeedback != nil && inst.CustomerFeedback.Rating > 0 {
			ratingSum += inst.CustomerFeedback.Rating
			rated++
		}
	}
	averageRating := 0.0
	if rated > 0 {
		averageRating = float64(ratingSum) / float64(rated)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalInstallations": total,
		"statusCounts":       statusCounts,
		"averageRating":      averageRating,
		"ratedInstallations": rated,
	})
}
