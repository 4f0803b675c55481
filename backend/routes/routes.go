package routes

import (
	"log"

	"buddycheck/backend/config"
	"buddycheck/backend/controllers"
	"buddycheck/backend/middleware"
	"buddycheck/backend/store"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, st store.Store, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(st, cfg, logger)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(st, cfg, logger)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Project routes
	projectsController := controllers.NewProjectsController(st, cfg, logger)
	projects := app.Group("/api/projects", authMiddleware)
	projects.Get("/", projectsController.GetProjects)
	projects.Post("/:id/checkin", projectsController.CheckIn)
	projects.Post("/:id/uncheckin", projectsController.UnCheckIn)
}
