package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/lumafilm/locsched/internal/config"
	"github.com/lumafilm/locsched/internal/pkg/cloudinary"
	"github.com/lumafilm/locsched/internal/pkg/logger"
	"github.com/lumafilm/locsched/internal/pkg/response"
	"github.com/lumafilm/locsched/internal/pkg/token"
)

type Handler struct {
	repo     *Repository
	cfg      *config.Config
	verify   TokenVerifier
	pictures *cloudinary.Service
}

func NewHandler(repo *Repository, cfg *config.Config, verify TokenVerifier, pictures *cloudinary.Service) *Handler {
	return &Handler{
		repo:     repo,
		cfg:      cfg,
		verify:   verify,
		pictures: pictures,
	}
}

// GoogleLogin godoc
// @Summary Login with Google
// @Description Verify a Google ID token and create or refresh the user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	googleUser, err := h.verify(c.Request.Context(), req.IDToken)
	if err != nil {
		response.Unauthorized(c, "Google sign-in failed", "GOOGLE_TOKEN_INVALID")
		return
	}

	if !googleUser.EmailVerified {
		response.Unauthorized(c, "Google account email is not verified", "EMAIL_UNVERIFIED")
		return
	}

	user, err := h.repo.GetUserByGoogleID(c.Request.Context(), googleUser.GoogleID)
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}

	if user == nil {
		// First login for this Google account
		user = &User{
			GoogleID:       googleUser.GoogleID,
			Email:          googleUser.Email,
			Name:           googleUser.Name,
			FirstName:      googleUser.FirstName,
			LastName:       googleUser.LastName,
			ProfilePicture: googleUser.Picture,
			AuthProvider:   "google",
		}
		if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
			response.DatabaseError(c, "Failed to create user")
			return
		}
		logger.Info("new user registered via google: %s", user.Email)
	} else {
		// Refresh mutable profile fields from Google on every login
		updates := map[string]interface{}{
			"name":      googleUser.Name,
			"firstName": googleUser.FirstName,
			"lastName":  googleUser.LastName,
		}
		// Don't clobber a custom avatar uploaded through the app
		if user.ProfilePictureID == "" && googleUser.Picture != "" {
			updates["profilePicture"] = googleUser.Picture
		}
		if err := h.repo.UpdateUser(c.Request.Context(), user.ID.Hex(), updates); err != nil {
			response.DatabaseError(c, "Failed to update user")
			return
		}
		user, err = h.repo.GetUserByID(c.Request.Context(), user.ID.Hex())
		if err != nil || user == nil {
			response.DatabaseError(c, "Failed to reload user")
			return
		}
	}

	sessionToken, err := token.Generate(user.ID.Hex(), user.Email, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.InternalServerError(c, "Failed to generate session token")
		return
	}

	response.Success(c, AuthResponse{
		Token: sessionToken,
		User:  user,
	})
}

// Me godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.DatabaseError(c, "Failed to load user")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, user)
}

// Logout godoc
// @Summary Logout
// @Description Session tokens are stateless; the client discards the token
// @Tags auth
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, map[string]string{"message": "Logged out"})
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /users/me [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.FirstName != "" {
		updates["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		updates["lastName"] = req.LastName
	}

	if len(updates) == 0 {
		response.BadRequest(c, "No fields to update")
		return
	}

	if err := h.repo.UpdateUser(c.Request.Context(), userID, updates); err != nil {
		response.DatabaseError(c, "Failed to update profile")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.InternalServerError(c, "Failed to reload profile")
		return
	}

	response.Success(c, user)
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /users/me/profile-picture [post]
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	if h.pictures == nil {
		response.InternalServerError(c, "Image storage is not configured")
		return
	}

	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}

	if err := cloudinary.ValidateImageFile(fileHeader); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.NotFound(c, "User not found")
		return
	}

	result, err := h.pictures.UploadImage(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		response.InternalServerError(c, "Failed to upload image")
		return
	}

	// Best effort: remove the previous custom avatar
	if user.ProfilePictureID != "" {
		_ = h.pictures.Delete(c.Request.Context(), user.ProfilePictureID)
	}

	updates := map[string]interface{}{
		"profilePicture":   result.URL,
		"profilePictureId": result.PublicID,
	}
	if err := h.repo.UpdateUser(c.Request.Context(), userID, updates); err != nil {
		response.DatabaseError(c, "Failed to save profile picture")
		return
	}

	response.Success(c, map[string]string{"profilePicture": result.URL})
}

// RemoveProfilePicture godoc
// @Summary Remove the uploaded profile picture
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /users/me/profile-picture [delete]
func (h *Handler) RemoveProfilePicture(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.NotFound(c, "User not found")
		return
	}

	if user.ProfilePictureID != "" && h.pictures != nil {
		_ = h.pictures.Delete(c.Request.Context(), user.ProfilePictureID)
	}

	updates := map[string]interface{}{
		"profilePicture":   "",
		"profilePictureId": "",
	}
	if err := h.repo.UpdateUser(c.Request.Context(), userID, updates); err != nil {
		response.DatabaseError(c, "Failed to remove profile picture")
		return
	}

	response.Success(c, map[string]string{"message": "Profile picture removed"})
}
