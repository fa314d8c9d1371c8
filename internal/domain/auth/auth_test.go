package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"debtledger/internal/pkg/jwt"
	"debtledger/internal/pkg/response"
)

func setupTestRouter(t *testing.T, hash string) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := jwt.New("test-secret", time.Hour)
	h := NewHandler(NewService(hash, jwtService, time.Hour))

	r := gin.New()
	h.RegisterPublicRoutes(r.Group("/api/v1"))
	return r, jwtService
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func login(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword("s3cret", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestLogin_Success(t *testing.T) {
	r, jwtService := setupTestRouter(t, mustHash(t, "s3cret"))

	w := login(r, `{"password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, int64(3600), resp.Data.ExpiresIn)

	claims, err := jwtService.ValidateToken(resp.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, OwnerSubject, claims.Subject)
	assert.Equal(t, jwt.RoleOwner, claims.Role)
}

func TestLogin_Errors(t *testing.T) {
	r, _ := setupTestRouter(t, mustHash(t, "s3cret"))

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"missing password", `{}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"bad json", `{`, http.StatusBadRequest, "INVALID_JSON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := login(r, tc.body)
			assert.Equal(t, tc.status, w.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestLogin_Disabled(t *testing.T) {
	svc := NewService("", jwt.New("x", time.Hour), time.Hour)
	_, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAuthDisabled)

	r, _ := setupTestRouter(t, "")
	w := login(r, `{"password":"anything"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
