package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Soulima01/Pranaya/internal/assistant"
	"github.com/Soulima01/Pranaya/internal/chat"
	"github.com/Soulima01/Pranaya/internal/config"
	"github.com/Soulima01/Pranaya/internal/handlers"
	"github.com/Soulima01/Pranaya/internal/middleware"
	"github.com/Soulima01/Pranaya/internal/speech"
	"github.com/Soulima01/Pranaya/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, synthesizer speech.Synthesizer) {
	// Shared state and collaborators
	healthStore := store.NewStore(db)
	sessions := chat.NewSessionManager()
	assistantClient := assistant.NewClient(cfg.Assistant.BaseURL, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second)
	chatRouter := chat.NewRouter(healthStore, synthesizer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(healthStore)
	trackerHandler := handlers.NewTrackerHandler(healthStore)
	chatHandler := handlers.NewChatHandler(healthStore, sessions, assistantClient, chatRouter)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/me", authHandler.Me)
		}

		// Onboarding profile
		profileRoutes := private.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.GetProfile)
			profileRoutes.PUT("", profileHandler.UpdateProfile)
			profileRoutes.POST("/complete", profileHandler.CompleteAssessment)
		}

		// Health drawer trackers
		trackerRoutes := private.Group("/trackers")
		{
			trackerRoutes.GET("", trackerHandler.GetTrackers)
			trackerRoutes.POST("/water", trackerHandler.AddWater)
			trackerRoutes.POST("/medications", trackerHandler.AddMedication)
			trackerRoutes.PATCH("/medications/:id", trackerHandler.ToggleMedication)
			trackerRoutes.DELETE("/medications/:id", trackerHandler.RemoveMedication)
			trackerRoutes.POST("/vaccines", trackerHandler.AddVaccine)
			trackerRoutes.DELETE("/vaccines/:name", trackerHandler.RemoveVaccine)
			trackerRoutes.PUT("/period", trackerHandler.SetPeriodDate)
		}

		// Chat is gated behind a completed assessment and rate limited
		// because every turn fans out to the assistant service.
		chatRoutes := private.Group("/chat")
		chatRoutes.Use(middleware.AssessmentGateMiddleware(healthStore))
		{
			chatRoutes.GET("", chatHandler.GetSession)
			chatRoutes.POST("/messages",
				middleware.RateLimitMiddleware(cfg.Chat.RateLimitPerSecond, cfg.Chat.RateLimitBurst),
				chatHandler.SendMessage)
			chatRoutes.POST("/emergency/ack", chatHandler.AcknowledgeEmergency)
			chatRoutes.DELETE("", chatHandler.ClearSession)
		}
	}

	// Health check endpoint, includes assistant reachability
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		c.JSON(200, gin.H{
			"status":    "UP",
			"assistant": assistantClient.Healthy(ctx),
		})
	})
}
