package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"debtledger/internal/pkg/response"
	"debtledger/internal/pkg/validator"
)

// Handler manages owner login
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login exchanges the owner password for an access token.
// @Summary		Owner login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	response.Response{data=LoginResponse}
// @Failure		401	{object}	response.Response
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Password is incorrect")
		case errors.Is(err, ErrAuthDisabled):
			response.Error(c, http.StatusNotFound, "AUTH_DISABLED", "Owner login is not configured")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
	})
}
