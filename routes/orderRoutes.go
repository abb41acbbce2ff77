package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/controllers"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"go.mongodb.org/mongo-driver/mongo"
)

func OrderRoutes(server *gin.Engine, db *mongo.Database) {
	orderController := controllers.NewOrderController(db)

	orders := server.Group("/api/orders", middlewares.RequireAuth(db))
	{
		orders.POST("", orderController.CreateOrder)
		orders.GET("/my-orders", orderController.GetMyOrders)
		orders.GET("/:orderId", orderController.GetOrder)
		orders.POST("/:orderId/cancel", orderController.CancelOrder)
	}
}
