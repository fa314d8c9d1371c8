package board

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debtledger/internal/pkg/response"
)

type Handler struct {
	builder *Builder
}

func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

// GetBoard handles GET /api/v1/board
// @Summary Ledger board: table rows, per-company summaries, sales and payments
// @Tags Board
// @Produce json
// @Success 200 {object} response.Response{data=Board}
// @Router /board [get]
func (h *Handler) GetBoard(c *gin.Context) {
	b, err := h.builder.Build(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/board", h.GetBoard)
}
