package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID             string    `json:"id" bson:"id"`
	Email          string    `json:"email" bson:"email"`
	HashedPassword string    `json:"-" bson:"hashed_password"`
	FirstName      string    `json:"first_name" bson:"first_name"`
	LastName       string    `json:"last_name" bson:"last_name"`
	Phone          string    `json:"phone" bson:"phone"`
	Role           string    `json:"role" bson:"role"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	IsVerified     bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

type SignupData struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NewUser builds a client account with a fresh ID and timestamps.
// The password must already be hashed.
func NewUser(data SignupData, hashedPassword string) User {
	now := time.Now().UTC()
	return User{
		ID:             uuid.NewString(),
		Email:          data.Email,
		HashedPassword: hashedPassword,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		Phone:          data.Phone,
		Role:           RoleClient,
		IsActive:       true,
		IsVerified:     false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
