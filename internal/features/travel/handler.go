package travel

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumafilm/locsched/internal/pkg/response"
	errs "github.com/lumafilm/locsched/pkg/errors"
)

// StopSource loads the ordered, addressed stop list of an itinerary owned by
// a user. Implemented by the itineraries feature; declared here so the travel
// feature does not import it.
type StopSource interface {
	StopsForItinerary(ctx context.Context, itineraryID, userID string) ([]Stop, error)
}

type Handler struct {
	calc  *Calculator
	stops StopSource
}

func NewHandler(calc *Calculator, stops StopSource) *Handler {
	return &Handler{calc: calc, stops: stops}
}

// CalculateMatrix godoc
// @Summary Estimate driving time between two addresses
// @Description Accepts one origin/destination pair and responds in a distance-matrix shape
// @Tags travel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MatrixRequest true "One origin and one destination address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Router /calculate-travel-times [post]
func (h *Handler) CalculateMatrix(c *gin.Context) {
	var req MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if len(req.Origins) != 1 || len(req.Destinations) != 1 {
		response.BadRequest(c, "Exactly one origin and one destination are required")
		return
	}

	origin := strings.TrimSpace(req.Origins[0])
	destination := strings.TrimSpace(req.Destinations[0])
	if origin == "" || destination == "" {
		response.BadRequest(c, "Origin and destination addresses must not be empty")
		return
	}

	seg := h.calc.segment(c.Request.Context(), Stop{Name: origin, Address: origin}, Stop{Name: destination, Address: destination})

	element := MatrixElement{Status: "OK"}
	if seg.Error != "" {
		element.Status = "NOT_FOUND"
	} else {
		element.Distance = &MatrixValue{Text: seg.Distance, Value: seg.DistanceMeters}
		element.Duration = &MatrixValue{Text: seg.Duration, Value: seg.DurationSeconds}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": MatrixData{
			Status: "OK",
			Rows:   []MatrixRow{{Elements: []MatrixElement{element}}},
		},
	})
}

// ItineraryTravelTimes godoc
// @Summary Estimate driving times across a stored itinerary
// @Tags travel
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id}/travel-times [post]
func (h *Handler) ItineraryTravelTimes(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	stops, err := h.stops.StopsForItinerary(c.Request.Context(), itineraryID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "Itinerary not found")
			return
		}
		response.DatabaseError(c, "Failed to load itinerary")
		return
	}

	summary, err := h.calc.Calculate(c.Request.Context(), stops)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientLocations) {
			response.BadRequest(c, "Need at least 2 locations with addresses to calculate travel times")
			return
		}
		response.InternalServerError(c, "Failed to calculate travel times")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
