package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lumafilm/locsched/internal/config"
)

func loginRouter(verify TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpireHours: 1}
	h := NewHandler(nil, cfg, verify, nil)

	r := gin.New()
	r.POST("/auth/google", h.GoogleLogin)
	return r
}

func postLogin(r *gin.Engine, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/google", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleLogin_MissingToken(t *testing.T) {
	r := loginRouter(func(ctx context.Context, raw string) (*GoogleUser, error) {
		t.Fatal("verifier should not be called")
		return nil, nil
	})

	w := postLogin(r, map[string]string{})
	require.Equal(t, 400, w.Code)
}

func TestGoogleLogin_InvalidToken(t *testing.T) {
	r := loginRouter(func(ctx context.Context, raw string) (*GoogleUser, error) {
		return nil, errors.New("bad signature")
	})

	w := postLogin(r, map[string]string{"idToken": "forged"})
	require.Equal(t, 401, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "GOOGLE_TOKEN_INVALID", body["code"])
}

func TestGoogleLogin_UnverifiedEmail(t *testing.T) {
	r := loginRouter(func(ctx context.Context, raw string) (*GoogleUser, error) {
		return &GoogleUser{
			GoogleID:      "g-123",
			Email:         "scout@example.com",
			EmailVerified: false,
		}, nil
	})

	w := postLogin(r, map[string]string{"idToken": "valid-but-unverified"})
	require.Equal(t, 401, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "EMAIL_UNVERIFIED", body["code"])
}
