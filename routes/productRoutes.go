package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/controllers"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"go.mongodb.org/mongo-driver/mongo"
)

func ProductRoutes(server *gin.Engine, db *mongo.Database) {
	productController := controllers.NewProductController(db)

	api := server.Group("/api", middlewares.OptionalAuth(db))
	{
		api.GET("/products", productController.GetProducts)
		api.GET("/products/bestsellers", productController.GetBestsellers)
		api.GET("/products/:id", productController.GetProduct)
		api.GET("/brands", productController.GetBrands)
		api.GET("/categories", productController.GetCategories)
		api.GET("/search/suggestions", productController.GetSuggestions)
		api.GET("/search/did-you-mean", productController.DidYouMean)
	}
}
