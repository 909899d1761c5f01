package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumafilm/locsched/internal/config"
	"github.com/lumafilm/locsched/internal/middleware"
	"github.com/lumafilm/locsched/internal/pkg/cloudinary"
	"github.com/lumafilm/locsched/internal/pkg/logger"
)

// RegisterRoutes registers the auth and user routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)

	pictures, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "avatars")
	if err != nil {
		logger.Warn("cloudinary not configured, profile picture uploads disabled: %v", err)
	}

	handler := NewHandler(repo, cfg, NewGoogleVerifier(cfg.GoogleClientID), pictures)
	requireAuth := middleware.Auth(cfg.JWTSecret)

	auth := router.Group("/auth")
	{
		auth.POST("/google", handler.GoogleLogin)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", requireAuth, handler.Me)
	}

	me := router.Group("/users/me")
	me.Use(requireAuth)
	{
		me.PATCH("", handler.UpdateProfile)
		me.POST("/profile-picture", handler.UploadProfilePicture)
		me.DELETE("/profile-picture", handler.RemoveProfilePicture)
	}
}
