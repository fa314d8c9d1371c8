package client

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:name", h.GetClient)
		clients.DELETE("/:name", h.DeleteClient)
		clients.POST("/:name/paid", h.MarkPaid)
		clients.POST("/:name/unpaid", h.MarkUnpaid)
		clients.PATCH("/:name/debt", h.UpdateDebt)
		clients.GET("/:name/payments", h.ListPayments)
		clients.POST("/:name/payments", h.RecordPayment)
	}
}
