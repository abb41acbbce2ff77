package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"github.com/kbeauty-tn/kbeauty-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderController struct {
	DB *mongo.Database
}

func NewOrderController(db *mongo.Database) *OrderController {
	return &OrderController{DB: db}
}

func (oc *OrderController) orders() *mongo.Collection {
	return oc.DB.Collection("orders")
}

// CreateOrder turns the submitted cart into a pending order.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	var orderData models.OrderCreate
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := models.NewOrder(user, orderData)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := oc.orders().InsertOne(ctx.Request.Context(), order); err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total_tnd":    order.TotalTND,
		"created_at":   order.CreatedAt,
	})
}

// GetMyOrders lists the authenticated user's orders, newest first.
func (oc *OrderController) GetMyOrders(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 100 {
		limit = 100
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := oc.orders().Find(ctx.Request.Context(), bson.M{"user_id": user.ID}, findOpts)
	if err != nil {
		log.Println("Order fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx.Request.Context(), &orders); err != nil {
		log.Println("Order decode error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, gin.H{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total_tnd":    order.TotalTND,
			"items_count":  len(order.Items),
			"created_at":   order.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

// GetOrder returns one order. Clients only see their own orders;
// anything else is a 404 so order IDs don't leak.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	filter := bson.M{"id": ctx.Param("orderId")}
	if user.Role != models.RoleAdmin {
		filter["user_id"] = user.ID
	}

	var order models.Order
	if err := oc.orders().FindOne(ctx.Request.Context(), filter).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Order fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// CancelOrder lets the owning user cancel an order that has not yet
// entered preparation.
func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)

	filter := bson.M{"id": ctx.Param("orderId"), "user_id": user.ID}

	var order models.Order
	if err := oc.orders().FindOne(ctx.Request.Context(), filter).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Order fetch error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := order.Cancel(); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	// Field updates and the history append go out as one write, so a
	// cancellation can never land without its audit entry.
	lastEntry := order.StatusHistory[len(order.StatusHistory)-1]
	update := bson.M{
		"$set": bson.M{
			"status":       order.Status,
			"cancelled_at": order.CancelledAt,
			"cancelled_by": order.CancelledBy,
			"updated_at":   order.UpdatedAt,
		},
		"$push": bson.M{"status_history": lastEntry},
	}

	if _, err := oc.orders().UpdateOne(ctx.Request.Context(), filter, update); err != nil {
		log.Println("Order cancel error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order cancelled",
		"status":  order.Status,
	})
}
