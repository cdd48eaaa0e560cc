package main

import (
	"log"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/database"
	"github.com/taskboard/taskboard/internal/handlers"
	"github.com/taskboard/taskboard/internal/logger"
	"github.com/taskboard/taskboard/internal/mailer"
	"github.com/taskboard/taskboard/internal/middleware"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Setup(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	smtpMailer := mailer.NewSMTPMailer(cfg)

	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	userService := services.NewUserService(userRepo, issuer, smtpMailer, cfg.AppBaseURL)
	taskService := services.NewTaskService(taskRepo, userRepo)

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(
		ginzap.Ginzap(zap.L(), time.RFC3339, true),
		ginzap.RecoveryWithZap(zap.L(), true),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			// Public routes
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/password-reset", userHandler.RequestPasswordReset)
			users.POST("/password-reset/confirm", userHandler.ConfirmPasswordReset)

			// Protected routes
			protected := users.Group("", middleware.RequireAuth(issuer))
			{
				protected.GET("", userHandler.ListUsers)
				protected.GET("/:id", userHandler.GetUser)
				protected.GET("/by-email/:email", userHandler.GetUserByEmail)
				protected.PUT("/me", userHandler.UpdateMe)
				protected.DELETE("/me", userHandler.DeleteMe)
			}
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(issuer))
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	zap.L().Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
