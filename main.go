package main

import (
	"log"

	"playground_store/config"
	"playground_store/database"
	"playground_store/helper"
	"playground_store/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // layout images
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartInstallationReminderScheduler()
	defer helper.StopInstallationReminderScheduler()

	router.SetupRoutes(app)

	port := config.ConfigOr("PORT", "8080")
	log.Fatal(app.Listen(":" + port))
}
