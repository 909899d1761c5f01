package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleUser represents the key information extracted from a validated Google ID token
type GoogleUser struct {
	GoogleID      string
	Email         string
	Name          string
	FirstName     string
	LastName      string
	Picture       string
	EmailVerified bool
}

// TokenVerifier validates a Google ID token and extracts the profile.
// A function type so handlers can be tested without Google.
type TokenVerifier func(ctx context.Context, rawToken string) (*GoogleUser, error)

// NewGoogleVerifier returns a TokenVerifier that checks the token signature
// and audience against the configured OAuth client ID.
func NewGoogleVerifier(clientID string) TokenVerifier {
	return func(ctx context.Context, rawToken string) (*GoogleUser, error) {
		payload, err := idtoken.Validate(ctx, rawToken, clientID)
		if err != nil {
			return nil, fmt.Errorf("invalid google token: %w", err)
		}

		user := &GoogleUser{
			GoogleID: payload.Subject,
		}

		if email, ok := payload.Claims["email"].(string); ok {
			user.Email = email
		}
		if name, ok := payload.Claims["name"].(string); ok {
			user.Name = name
		}
		if given, ok := payload.Claims["given_name"].(string); ok {
			user.FirstName = given
		}
		if family, ok := payload.Claims["family_name"].(string); ok {
			user.LastName = family
		}
		if picture, ok := payload.Claims["picture"].(string); ok {
			user.Picture = picture
		}
		if verified, ok := payload.Claims["email_verified"].(bool); ok {
			user.EmailVerified = verified
		}

		return user, nil
	}
}
