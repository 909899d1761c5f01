package itineraries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lumafilm/locsched/internal/pkg/logger"
	"github.com/lumafilm/locsched/internal/pkg/mailer"
	"github.com/lumafilm/locsched/internal/pkg/response"
	errs "github.com/lumafilm/locsched/pkg/errors"
)

// MailSender is what the share handler needs from the mailer.
type MailSender interface {
	Send(to []string, subject, body string) error
}

type Handler struct {
	repo        *Repository
	sharing     *Service
	mail        MailSender
	frontendURL string
}

func NewHandler(repo *Repository, sharing *Service, mail MailSender, frontendURL string) *Handler {
	return &Handler{
		repo:        repo,
		sharing:     sharing,
		mail:        mail,
		frontendURL: frontendURL,
	}
}

// Create godoc
// @Summary Create a new itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItineraryRequest true "Itinerary data"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /itineraries [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateCreate(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	itinerary := &Itinerary{
		UserID:        userID,
		Title:         req.Title,
		Date:          *req.Date,
		Locations:     defaultStatuses(req.Locations),
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
	}

	if err := h.repo.Create(c.Request.Context(), itinerary); err != nil {
		response.DatabaseError(c, "Failed to create itinerary")
		return
	}

	response.Created(c, itinerary)
}

// Get godoc
// @Summary Get an itinerary by ID
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	itinerary, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if itinerary == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}

	response.Success(c, itinerary)
}

// List godoc
// @Summary List the caller's itineraries
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number to return (default 50, max 100)"
// @Success 200 {object} response.PaginatedResponse
// @Router /itineraries [get]
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	itineraries, err := h.repo.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.DatabaseError(c, "Failed to list itineraries")
		return
	}

	total, err := h.repo.CountByUser(c.Request.Context(), userID)
	if err != nil {
		response.DatabaseError(c, "Failed to count itineraries")
		return
	}

	response.Paginated(c, itineraries, total, limit)
}

// Update godoc
// @Summary Update an itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param request body UpdateItineraryRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	var req UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateUpdate(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	update := bson.M{}
	if req.Title != "" {
		update["title"] = req.Title
	}
	if req.Date != nil {
		update["date"] = req.Date
	}
	if req.Locations != nil {
		update["locations"] = defaultStatuses(req.Locations)
	}
	if req.StartLocation != nil {
		update["startLocation"] = req.StartLocation
	}
	if req.EndLocation != nil {
		update["endLocation"] = req.EndLocation
	}

	if len(update) == 0 {
		response.BadRequest(c, "No fields to update")
		return
	}

	if err := h.repo.Update(c.Request.Context(), itineraryID, userID, update); err != nil {
		if err.Error() == "itinerary not found" {
			response.NotFound(c, "Itinerary not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	itinerary, err := h.repo.GetByID(c.Request.Context(), itineraryID, userID)
	if err != nil || itinerary == nil {
		response.InternalServerError(c, "Failed to reload itinerary")
		return
	}

	response.Success(c, itinerary)
}

// Delete godoc
// @Summary Delete an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.repo.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if err.Error() == "itinerary not found" {
			response.NotFound(c, "Itinerary not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, map[string]string{"message": "Itinerary deleted"})
}

// UpdateLocationStatus godoc
// @Summary Set the status of one stop
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param index path int true "Stop index (0-based)"
// @Param request body UpdateLocationStatusRequest true "New status"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id}/locations/{index}/status [patch]
func (h *Handler) UpdateLocationStatus(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "Invalid location index")
		return
	}

	var req UpdateLocationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if req.Status == "" || !validStatus(req.Status) {
		response.ValidationFailed(c, "status must be pending, completed or skipped")
		return
	}

	if err := h.repo.UpdateLocationStatus(c.Request.Context(), itineraryID, userID, index, req.Status); err != nil {
		if err.Error() == "itinerary or location not found" {
			response.NotFound(c, "Itinerary or location not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, map[string]string{"message": "Status updated"})
}

// Share godoc
// @Summary Share an itinerary by email with a password
// @Description Emails every listed recipient a link and password; sharing is aborted if delivery fails
// @Tags sharing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param request body ShareRequest true "Recipients, password and optional message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id}/share [post]
func (h *Handler) Share(c *gin.Context) {
	userID := c.GetString("userID")

	itinerary, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if itinerary == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	notify := func(shareToken string, recipients []string) error {
		link := h.shareLink(shareToken)
		subject, body := mailer.ShareNotification(
			itinerary.Title,
			itinerary.Date.Format("2006-01-02"),
			link,
			req.Password,
			req.Message,
		)
		return h.mail.Send(recipients, subject, body)
	}

	token, sharedWith, err := h.sharing.EnableSharing(c.Request.Context(), itinerary, req.Emails, req.Password, notify)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errs.ErrMailDelivery):
			logger.Error("share notification failed for itinerary %s: %v", itinerary.ID.Hex(), err)
			response.InternalServerError(c, "Failed to send share notification; itinerary was not shared")
		default:
			response.DatabaseError(c, "Failed to share itinerary")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"shareLink":  h.shareLink(token),
		"sharedWith": sharedWith,
	})
}

// Unshare godoc
// @Summary Stop sharing an itinerary
// @Description Idempotent; succeeds even when the itinerary is not shared
// @Tags sharing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorResponse
// @Router /itineraries/{id}/unshare [post]
func (h *Handler) Unshare(c *gin.Context) {
	userID := c.GetString("userID")

	itinerary, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if itinerary == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}

	if err := h.sharing.DisableSharing(c.Request.Context(), itinerary); err != nil {
		response.DatabaseError(c, "Failed to unshare itinerary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AccessShared godoc
// @Summary Open a shared itinerary with its password
// @Description Public endpoint; rate limited per client IP
// @Tags sharing
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param request body SharedAccessRequest true "Access password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /shared/{token} [post]
func (h *Handler) AccessShared(c *gin.Context) {
	var req SharedAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if req.Password == "" {
		response.BadRequest(c, "Password is required")
		return
	}

	view, err := h.sharing.AccessShared(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			response.NotFound(c, "Shared itinerary not found")
		case errors.Is(err, errs.ErrUnauthorized):
			response.Unauthorized(c, "Incorrect password")
		default:
			response.DatabaseError(c, "Failed to load shared itinerary")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"itinerary": view,
	})
}

func (h *Handler) shareLink(shareToken string) string {
	return h.frontendURL + "/shared/" + shareToken
}

// defaultStatuses normalizes absent stop statuses to pending.
func defaultStatuses(locations []Location) []Location {
	for i := range locations {
		if locations[i].Status == "" {
			locations[i].Status = StatusPending
		}
	}
	return locations
}
