package travel

import (
	"github.com/gin-gonic/gin"

	"github.com/lumafilm/locsched/internal/config"
	"github.com/lumafilm/locsched/internal/middleware"
)

// RegisterRoutes wires the travel endpoints. The stop source is passed in by
// the caller because it is implemented by the itineraries feature.
func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config, stops StopSource) {
	geocoder := NewNominatimGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent)
	handler := NewHandler(NewCalculator(geocoder), stops)

	requireAuth := middleware.Auth(cfg.JWTSecret)

	router.POST("/calculate-travel-times", requireAuth, handler.CalculateMatrix)
	router.POST("/itineraries/:id/travel-times", requireAuth, handler.ItineraryTravelTimes)
}
