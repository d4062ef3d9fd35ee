package api

import (
	v1 "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api/v1"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	LineItem *v1.LineItemHandler
	Health   *v1.HealthHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	lineItems := router.Group("/line-items")
	{
		lineItems.POST("", handlers.LineItem.CreateLineItem)
		lineItems.GET("", handlers.LineItem.ListLineItems)
		lineItems.GET("/:id", handlers.LineItem.GetLineItem)
		lineItems.PUT("/:id", handlers.LineItem.UpdateLineItem)
		lineItems.DELETE("/:id", handlers.LineItem.DeleteLineItem)
	}

	// nested under the invoice reference to keep /line-items/:id unambiguous
	router.GET("/invoices/:invoice_id/line-items", handlers.LineItem.ListLineItemsByInvoice)
}
