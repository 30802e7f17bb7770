package router

import (
	"playground_store/constants"
	"playground_store/handler"
	"playground_store/middleware"
	"playground_store/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Me)

	user := v1.Group("/users")
	user.Get("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetUsers)
	user.Get("/team-members", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetTeamMembers)

	equipment := v1.Group("/equipment")
	equipment.Get("/", handler.GetEquipment)
	equipment.Get("/categories", handler.GetEquipmentCategories)
	equipment.Get("/:slug", handler.GetEquipmentBySlug)
	equipment.Post("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.CreateEquipment(), handler.CreateEquipment)
	equipment.Put("/:equipmentId", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("equipmentId"), validate.UpdateEquipment(), handler.UpdateEquipment)
	equipment.Patch("/:equipmentId/stock", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("equipmentId"), validate.UpdateStock(), handler.UpdateEquipmentStock)
	equipment.Delete("/:equipmentId", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("equipmentId"), handler.DeleteEquipment)

	v1.Post("/cloudinary-signature", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GenerateUploadSignature)

	order := v1.Group("/orders", middleware.Protected())
	order.Get("/", handler.GetOrders)
	order.Get("/my-orders", handler.GetMyOrders)
	order.Get("/stats/overview", middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetOrderStats)
	order.Post("/", middleware.RequireRoles(constants.ROLE_CUSTOMER, constants.ROLE_ADMIN), validate.CreateOrder(), handler.CreateOrder)
	order.Get("/:orderId", validate.GetById("orderId"), handler.GetOrder)
	order.Put("/:orderId/status", middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	order.Put("/:orderId/payment", middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("orderId"), validate.UpdatePaymentStatus(), handler.UpdatePaymentStatus)
	order.Put("/:orderId/cancel", validate.GetById("orderId"), handler.CancelOrder)
	order.Post("/:orderId/layout-image", validate.GetById("orderId"), handler.UploadLayoutImage)

	installation := v1.Group("/installations")
	installation.Get("/live/:id", websocket.New(handler.InstallationWebsocket))
	installation.Get("/", middleware.Protected(), handler.GetInstallations)
	installation.Get("/stats/overview", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetInstallationStats)
	installation.Get("/team/schedule", middleware.Protected(), middleware.RequireRoles(constants.ROLE_INSTALLATION_TEAM), handler.GetTeamSchedule)
	installation.Post("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.ScheduleInstallation(), handler.ScheduleInstallation)
	installation.Get("/:installationId", middleware.Protected(), validate.GetById("installationId"), handler.GetInstallation)
	installation.Put("/:installationId/status", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_INSTALLATION_TEAM), validate.GetById("installationId"), validate.UpdateInstallationStatus(), handler.UpdateInstallationStatus)
	installation.Put("/:installationId/equipment-status", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_INSTALLATION_TEAM), validate.GetById("installationId"), validate.UpdateEquipmentStatus(), handler.UpdateInstallationEquipmentStatus)
	installation.Put("/:installationId/notes", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_INSTALLATION_TEAM), validate.GetById("installationId"), validate.TeamNotes(), handler.UpdateTeamNotes)
	installation.Put("/:installationId/feedback", middleware.Protected(), middleware.RequireRoles(constants.ROLE_CUSTOMER), validate.GetById("installationId"), validate.CustomerFeedback(), handler.AddCustomerFeedback)
}
