package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sidvanarse/orderManagement/handlers"
	"github.com/sidvanarse/orderManagement/metrics"
)

func RegisterRoutes(router *gin.Engine, handler *handlers.Handler, m *metrics.Metrics) {
	api := router.Group("/api")
	{
		api.GET("/book/:bookName", handler.GetBook)
		api.POST("/book/save/:bookName", handler.SaveBook)
		api.POST("/book/close/:bookName", handler.CloseBook)
		api.POST("/book/open/:bookName", handler.OpenBook)

		api.POST("/order/add", handler.AddOrder)
		api.POST("/order/edit", handler.EditOrder)
		api.POST("/order/delete/:id", handler.DeleteOrder)

		api.POST("/execution/trigger", handler.TriggerExecution)

		api.GET("/report/:bookName", handler.GetReport)
	}

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
}
