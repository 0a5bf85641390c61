package routes

import (
	"oficina_pro/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders  = "/orders"
	PathBilling = "/billing"
)

func addBillingRoutes(rg *gin.RouterGroup, orderHandler *handlers.ServiceOrderHandler, billingHandler *handlers.BillingHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)
		orders.PATCH("/:id/start", orderHandler.Start)
		orders.PATCH("/:id/cancel", orderHandler.Cancel)
		orders.PATCH("/:id/finalize", orderHandler.Finalize)
		orders.PATCH("/:id/payment", orderHandler.ConfirmPayment)
		orders.POST("/:id/collection-notice", billingHandler.SendCollectionNotice)
	}

	billing := rg.Group(PathBilling)
	{
		billing.GET("/summary", billingHandler.Summary)
	}
}
