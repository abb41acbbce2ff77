package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kbeauty-tn/kbeauty-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const userContextKey = "user"

func userFromToken(ctx context.Context, db *mongo.Database, tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return models.User{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, errors.New("invalid token claims")
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return models.User{}, errors.New("invalid token subject")
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"id": userID}).Decode(&user); err != nil {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth validates the Bearer token and loads the account into
// the request context. Requests without a valid token get a 401.
func RequireAuth(db *mongo.Database) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := bearerToken(ctx)
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		user, err := userFromToken(ctx.Request.Context(), db, tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// OptionalAuth loads the account when a valid token is present and
// stays silent otherwise, for endpoints that allow anonymous access.
func OptionalAuth(db *mongo.Database) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString := bearerToken(ctx); tokenString != "" {
			if user, err := userFromToken(ctx.Request.Context(), db, tokenString); err == nil {
				ctx.Set(userContextKey, user)
			}
		}
		ctx.Next()
	}
}

// CurrentUser returns the account set by RequireAuth or OptionalAuth.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
