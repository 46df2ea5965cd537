// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers together and registers
// every HTTP route with its middleware.
package routes

import (
	"securebank/internal/handlers"
	"securebank/internal/middleware"
	"securebank/internal/models"
	"securebank/internal/repositories"
	"securebank/internal/services/auth"
	"securebank/internal/services/fraud"
	"securebank/internal/services/transaction"
	"securebank/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	txRepo := repositories.NewTransactionRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	engine := fraud.NewEngine(txRepo)
	txService := transaction.NewService(userRepo, txRepo, engine)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	txHandler := handlers.NewTransactionHandler(txService, userService)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to SecureBank API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	protected.Get("/users/:id", middleware.HasPermission(models.PermissionUserRead), userHandler.GetUser)

	setupTransactionRoutes(protected, txHandler)
	setupAdminRoutes(app, authMiddleware, txHandler, userHandler)
}

func setupTransactionRoutes(router fiber.Router, h *handlers.TransactionHandler) {
	tx := router.Group("/transactions")

	tx.Post("/", middleware.HasPermission(models.PermissionTransactionWrite), h.Create)
	tx.Get("/sender/:senderId", middleware.HasPermission(models.PermissionTransactionRead), h.GetBySender)
	tx.Get("/sender/:senderId/count", middleware.HasPermission(models.PermissionTransactionRead), h.CountBySender)
	tx.Get("/receiver/:receiverId", middleware.HasPermission(models.PermissionTransactionRead), h.GetByReceiver)
	tx.Get("/:id", middleware.HasPermission(models.PermissionTransactionRead), h.GetByID)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, txHandler *handlers.TransactionHandler, userHandler *handlers.UserHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/transactions", middleware.HasPermission(models.PermissionReadAdmin), txHandler.GetAll)
	admin.Get("/transactions/high-risk", middleware.HasPermission(models.PermissionReadAdmin), txHandler.GetHighRisk)
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), userHandler.ListUsers)
}
