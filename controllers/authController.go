package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"github.com/kbeauty-tn/kbeauty-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Access tokens live for a week.
	tokenLifetime = 7 * 24 * time.Hour

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgEmailTaken            = "this email is already in use"
	msgPhoneTaken            = "this phone number is already in use"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgAccountDisabled       = "account disabled"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "internal server error"
	msgProfileUpdated        = "profile updated"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

type AuthController struct {
	DB *mongo.Database
}

func NewAuthController(db *mongo.Database) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) users() *mongo.Collection {
	return ac.DB.Collection("users")
}

// Signup creates a new client account and logs it in.
func (ac *AuthController) Signup(ctx *gin.Context) {
	var signupData models.SignupData
	if err := ctx.ShouldBindJSON(&signupData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	signupData.Email = strings.ToLower(signupData.Email)

	// Existence checks are not transactional; the unique indexes on
	// email and phone are the real guard against a concurrent dupe.
	count, err := ac.users().CountDocuments(ctx.Request.Context(), bson.M{"email": signupData.Email})
	if err != nil {
		log.Println("Database error during email check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
		return
	}

	count, err = ac.users().CountDocuments(ctx.Request.Context(), bson.M{"phone": signupData.Phone})
	if err != nil {
		log.Println("Database error during phone check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPhoneTaken)
		return
	}

	hashedPassword, err := hashPassword(signupData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.NewUser(signupData, hashedPassword)
	if _, err := ac.users().InsertOne(ctx.Request.Context(), user); err != nil {
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Login authenticates with email and password.
func (ac *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	err := ac.users().FindOne(ctx.Request.Context(), bson.M{"email": strings.ToLower(loginData.Email)}).Decode(&user)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.HashedPassword, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.IsActive {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountDisabled)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GetMe returns the authenticated user's profile.
func (ac *AuthController) GetMe(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// UpdateMe updates name and phone on the authenticated profile.
func (ac *AuthController) UpdateMe(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	var updateData struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	update := bson.M{"updated_at": time.Now().UTC()}
	if updateData.FirstName != "" {
		update["first_name"] = updateData.FirstName
	}
	if updateData.LastName != "" {
		update["last_name"] = updateData.LastName
	}
	if updateData.Phone != "" {
		count, err := ac.users().CountDocuments(ctx.Request.Context(), bson.M{
			"phone": updateData.Phone,
			"id":    bson.M{"$ne": user.ID},
		})
		if err != nil {
			log.Println("Database error during phone check:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if count > 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgPhoneTaken)
			return
		}
		update["phone"] = updateData.Phone
	}

	_, err := ac.users().UpdateOne(ctx.Request.Context(), bson.M{"id": user.ID}, bson.M{"$set": update})
	if err != nil {
		log.Println("Profile update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProfileUpdated})
}
