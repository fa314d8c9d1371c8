package refresh

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"debtledger/internal/pkg/response"
)

// TokenCheck validates the token a viewer passes as ?token=.
// A nil TokenCheck accepts every viewer.
type TokenCheck func(token string) error

type Handler struct {
	hub      *Hub
	check    TokenCheck
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, check TokenCheck, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handler{
		hub:   hub,
		check: check,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || origins[origin]
			},
		},
	}
}

// HandleWebSocket handles GET /api/v1/ws/refresh?token=JWT
// Browsers cannot set headers on websocket requests, hence the query token.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	if h.check != nil {
		token := c.Query("token")
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
			return
		}
		if err := h.check(token); err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("refresh_ws upgrade failed: %v", err)
		return
	}
	h.hub.ServeWS(conn)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/refresh", h.HandleWebSocket)
}
