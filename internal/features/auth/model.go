package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user in the system
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID          string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Email             string             `bson:"email" json:"email"`
	Name              string             `bson:"name" json:"name"`
	FirstName         string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName          string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	ProfilePicture    string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	ProfilePictureID  string             `bson:"profilePictureId,omitempty" json:"-"`
	AuthProvider      string             `bson:"authProvider" json:"authProvider"` // "google" or "local"
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GoogleAuthRequest represents the payload for Google OAuth login
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest represents the payload for updating user profile
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
