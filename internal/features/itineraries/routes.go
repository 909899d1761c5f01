package itineraries

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumafilm/locsched/internal/middleware"
	"github.com/lumafilm/locsched/internal/pkg/ratelimit"
)

// sharedAccessLimit caps password attempts against a share token per client IP.
const (
	sharedAccessLimit  = 10
	sharedAccessWindow = time.Minute
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, jwtSecret string) {
	itineraries := router.Group("/itineraries")
	itineraries.Use(middleware.Auth(jwtSecret))
	{
		itineraries.POST("", handler.Create)
		itineraries.GET("", handler.List)
		itineraries.GET("/:id", handler.Get)
		itineraries.PUT("/:id", handler.Update)
		itineraries.DELETE("/:id", handler.Delete)
		itineraries.PATCH("/:id/locations/:index/status", handler.UpdateLocationStatus)

		itineraries.POST("/:id/share", handler.Share)
		itineraries.POST("/:id/unshare", handler.Unshare)
	}

	limiter := ratelimit.New(sharedAccessLimit, sharedAccessWindow)
	limiter.StartCleanup(5 * time.Minute)

	shared := router.Group("/shared")
	shared.Use(ratelimit.Middleware(limiter))
	{
		shared.POST("/:token", handler.AccessShared)
	}
}
