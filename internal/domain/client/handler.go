package client

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"debtledger/internal/pkg/response"
	"debtledger/internal/pkg/validator"
)

// Handler handles client ledger HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates client handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListClients handles GET /api/v1/clients
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param company query string false "Only clients of this company"
// @Success 200 {object} response.Response{data=ClientListResponse}
// @Router /clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context(), c.Query("company"))
	if err != nil {
		response.Internal(c, err)
		return
	}
	if clients == nil {
		clients = []*Client{}
	}
	response.Success(c, http.StatusOK, ClientListResponse{Clients: clients, Total: len(clients)})
}

// CreateClient handles POST /api/v1/clients
// @Summary Add or overwrite a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Client"
// @Success 201 {object} response.Response{data=Client}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	client, err := h.service.AddClient(c.Request.Context(), req.Name, string(req.Debt), req.Company)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, client)
}

// GetClient handles GET /api/v1/clients/:name
// @Summary Get client with payment history
// @Tags Clients
// @Produce json
// @Param name path string true "Client name"
// @Success 200 {object} response.Response{data=Client}
// @Failure 404 {object} response.Response
// @Router /clients/{name} [get]
func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

// DeleteClient handles DELETE /api/v1/clients/:name
// Removing an unknown client is not an error.
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("name")); err != nil {
		response.Internal(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkPaid handles POST /api/v1/clients/:name/paid
func (h *Handler) MarkPaid(c *gin.Context) {
	client, err := h.service.MarkPaid(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

// MarkUnpaid handles POST /api/v1/clients/:name/unpaid
func (h *Handler) MarkUnpaid(c *gin.Context) {
	client, err := h.service.MarkUnpaid(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

// UpdateDebt handles PATCH /api/v1/clients/:name/debt
func (h *Handler) UpdateDebt(c *gin.Context) {
	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	client, err := h.service.EditDebt(c.Request.Context(), c.Param("name"), string(req.Debt))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

// RecordPayment handles POST /api/v1/clients/:name/payments
// @Summary Record a partial payment
// @Tags Clients
// @Accept json
// @Produce json
// @Param name path string true "Client name"
// @Param request body RecordPaymentRequest true "Payment"
// @Success 201 {object} response.Response{data=Client}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /clients/{name}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	client, err := h.service.RecordPayment(c.Request.Context(), c.Param("name"), string(req.Amount))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, client)
}

// ListPayments handles GET /api/v1/clients/:name/payments
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.service.Payments(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if payments == nil {
		payments = []Payment{}
	}
	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "CLIENT_NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrUnknownCompany):
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		response.Internal(c, err)
	}
}
