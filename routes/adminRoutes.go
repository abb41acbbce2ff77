package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/controllers"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"go.mongodb.org/mongo-driver/mongo"
)

func AdminRoutes(server *gin.Engine, db *mongo.Database) {
	adminController := controllers.NewAdminController(db)

	admin := server.Group("/api/admin", middlewares.RequireAuth(db), middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", adminController.GetDashboard)

		admin.GET("/orders", adminController.GetAllOrders)
		admin.GET("/orders/:orderId", adminController.GetOrderDetails)
		admin.PUT("/orders/:orderId/status", adminController.UpdateOrderStatus)

		admin.GET("/products", adminController.GetAllProducts)
		admin.POST("/products", adminController.CreateProduct)
		admin.PUT("/products/:productId", adminController.UpdateProduct)
		admin.DELETE("/products/:productId", adminController.DeleteProduct)
		admin.POST("/products/:productId/image", adminController.UploadProductImage)
		admin.POST("/products/:productId/toggle-bestseller", adminController.ToggleBestseller)
		admin.POST("/products/:productId/toggle-new", adminController.ToggleNew)
		admin.POST("/products/:productId/toggle-stock", adminController.ToggleStock)

		admin.GET("/clients", adminController.GetClients)
		admin.GET("/clients/:clientId", adminController.GetClientDetails)
	}
}
