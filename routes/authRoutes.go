package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/controllers"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"go.mongodb.org/mongo-driver/mongo"
)

func AuthRoutes(server *gin.Engine, db *mongo.Database) {
	authController := controllers.NewAuthController(db)

	auth := server.Group("/api/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.GET("/me", middlewares.RequireAuth(db), authController.GetMe)
		auth.PUT("/me", middlewares.RequireAuth(db), authController.UpdateMe)
	}
}
