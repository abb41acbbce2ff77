package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/middlewares"
	"github.com/kbeauty-tn/kbeauty-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminController struct {
	DB *mongo.Database
}

func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{DB: db}
}

func (ad *AdminController) orders() *mongo.Collection {
	return ad.DB.Collection("orders")
}

func (ad *AdminController) products() *mongo.Collection {
	return ad.DB.Collection("products")
}

func (ad *AdminController) users() *mongo.Collection {
	return ad.DB.Collection("users")
}

// sumOrderTotals runs a group+sum aggregation over total_tnd for the
// orders matching the filter.
func (ad *AdminController) sumOrderTotals(ctx context.Context, match bson.M) (int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_tnd"}}},
		}}},
	}

	cursor, err := ad.orders().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// GetDashboard aggregates the store-wide statistics.
func (ad *AdminController) GetDashboard(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	totalOrders, err := ad.orders().CountDocuments(reqCtx, bson.M{})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to load dashboard", err)
		return
	}
	pendingOrders, _ := ad.orders().CountDocuments(reqCtx, bson.M{"status": models.StatusPending})
	confirmedOrders, _ := ad.orders().CountDocuments(reqCtx, bson.M{"status": models.StatusConfirmed})
	deliveredOrders, _ := ad.orders().CountDocuments(reqCtx, bson.M{"status": models.StatusDelivered})

	totalRevenue, err := ad.sumOrderTotals(reqCtx, bson.M{"status": models.StatusDelivered})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute revenue", err)
		return
	}
	potentialRevenue, err := ad.sumOrderTotals(reqCtx, bson.M{"status": bson.M{"$ne": models.StatusCancelled}})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute revenue", err)
		return
	}

	totalProducts, _ := ad.products().CountDocuments(reqCtx, bson.M{})
	totalUsers, _ := ad.users().CountDocuments(reqCtx, bson.M{"role": models.RoleClient})

	// Top 8 products by quantity sold across all orders.
	topPipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.product_id"},
			{Key: "product_name", Value: bson.D{{Key: "$first", Value: "$items.product_name"}}},
			{Key: "product_image", Value: bson.D{{Key: "$first", Value: "$items.product_image"}}},
			{Key: "brand", Value: bson.D{{Key: "$first", Value: "$items.brand"}}},
			{Key: "total_sold", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total_sold", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 8}},
	}

	topProducts := []bson.M{}
	if cursor, err := ad.orders().Aggregate(reqCtx, topPipeline); err == nil {
		if err := cursor.All(reqCtx, &topProducts); err != nil {
			log.Println("Top products decode error:", err)
		}
	} else {
		log.Println("Top products aggregation error:", err)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total_orders":      totalOrders,
		"pending_orders":    pendingOrders,
		"confirmed_orders":  confirmedOrders,
		"delivered_orders":  deliveredOrders,
		"total_revenue":     totalRevenue,
		"potential_revenue": potentialRevenue,
		"total_products":    totalProducts,
		"total_users":       totalUsers,
		"top_products":      topProducts,
	})
}

// GetAllOrders lists orders, optionally filtered by status.
func (ad *AdminController) GetAllOrders(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	filter := bson.M{}
	if status := ctx.Query("status"); status != "" {
		filter["status"] = status
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := ad.orders().Find(ctx.Request.Context(), filter, findOpts)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx.Request.Context(), &orders); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode orders", err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// GetOrderDetails returns any order by ID.
func (ad *AdminController) GetOrderDetails(ctx *gin.Context) {
	var order models.Order
	err := ad.orders().FindOne(ctx.Request.Context(), bson.M{"id": ctx.Param("orderId")}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// UpdateOrderStatus applies a privileged status change. Any enumerated
// status is accepted regardless of the current one; only the value
// itself is validated.
func (ad *AdminController) UpdateOrderStatus(ctx *gin.Context) {
	admin, _ := middlewares.CurrentUser(ctx)

	var statusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	filter := bson.M{"id": ctx.Param("orderId")}

	var order models.Order
	if err := ad.orders().FindOne(ctx.Request.Context(), filter).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order", err)
		}
		return
	}

	if err := order.SetStatus(statusData.Status, admin.Email); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("invalid status, accepted values: %v", models.OrderStatuses()))
		return
	}

	set := bson.M{
		"status":     order.Status,
		"updated_at": order.UpdatedAt,
	}
	switch order.Status {
	case models.StatusConfirmed:
		set["confirmed_at"] = order.ConfirmedAt
	case models.StatusDelivered:
		set["delivered_at"] = order.DeliveredAt
	case models.StatusCancelled:
		set["cancelled_at"] = order.CancelledAt
		set["cancelled_by"] = order.CancelledBy
	}

	lastEntry := order.StatusHistory[len(order.StatusHistory)-1]
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": lastEntry},
	}

	if _, err := ad.orders().UpdateOne(ctx.Request.Context(), filter, update); err != nil {
		log.Println("Order status update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated",
		"status":  order.Status,
	})
}

// GetAllProducts lists the catalog for the admin panel.
func (ad *AdminController) GetAllProducts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "200"))
	if limit < 1 || limit > 500 {
		limit = 200
	}

	cursor, err := ad.products().Find(ctx.Request.Context(), bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx.Request.Context(), &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// CreateProduct adds a catalog entry, applying the pricing invariant.
func (ad *AdminController) CreateProduct(ctx *gin.Context) {
	var productData models.ProductCreate
	if err := ctx.ShouldBindJSON(&productData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product := models.NewProduct(productData)
	if _, err := ad.products().InsertOne(ctx.Request.Context(), product); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct patches the provided fields and recomputes the price
// when the discount changes.
func (ad *AdminController) UpdateProduct(ctx *gin.Context) {
	var data models.ProductUpdate
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	filter := bson.M{"id": ctx.Param("productId")}

	var product models.Product
	if err := ad.products().FindOne(ctx.Request.Context(), filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", err)
		}
		return
	}

	update := bson.M{"updated_at": time.Now().UTC()}
	if data.Name != nil {
		update["name"] = *data.Name
	}
	if data.Brand != nil {
		update["brand"] = *data.Brand
	}
	if data.Category != nil {
		update["category"] = *data.Category
	}
	if data.Description != nil {
		update["description"] = *data.Description
	}
	if data.ImageURL != nil {
		update["image_url"] = *data.ImageURL
	}
	if data.Volume != nil {
		update["volume"] = *data.Volume
	}
	if data.InStock != nil {
		update["in_stock"] = *data.InStock
	}
	if data.IsNew != nil {
		update["is_new"] = *data.IsNew
	}
	if data.IsBestseller != nil {
		update["is_bestseller"] = *data.IsBestseller
	}
	if data.OriginalPriceTND != nil {
		update["original_price_tnd"] = *data.OriginalPriceTND
	}
	if data.PriceTND != nil {
		update["price_tnd"] = *data.PriceTND
	}

	// A discount change re-derives the price from the original price.
	if data.DiscountPercentage != nil {
		update["discount_percentage"] = *data.DiscountPercentage

		original := product.OriginalPriceTND
		if original == 0 {
			original = product.PriceTND
		}
		if data.OriginalPriceTND != nil {
			original = *data.OriginalPriceTND
		}

		if *data.DiscountPercentage > 0 {
			update["price_tnd"] = models.DiscountedPrice(original, *data.DiscountPercentage)
			update["original_price_tnd"] = original
		} else {
			update["price_tnd"] = original
			update["discount_percentage"] = 0
		}
	}

	if _, err := ad.products().UpdateOne(ctx.Request.Context(), filter, bson.M{"$set": update}); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct removes a catalog entry.
func (ad *AdminController) DeleteProduct(ctx *gin.Context) {
	result, err := ad.products().DeleteOne(ctx.Request.Context(), bson.M{"id": ctx.Param("productId")})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	if result.DeletedCount == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted"})
}

// toggleProductFlag flips a boolean product field and returns its new
// value under the field name.
func (ad *AdminController) toggleProductFlag(ctx *gin.Context, field string, current func(models.Product) bool) {
	filter := bson.M{"id": ctx.Param("productId")}

	var product models.Product
	if err := ad.products().FindOne(ctx.Request.Context(), filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", err)
		}
		return
	}

	newValue := !current(product)
	update := bson.M{"$set": bson.M{field: newValue, "updated_at": time.Now().UTC()}}
	if _, err := ad.products().UpdateOne(ctx.Request.Context(), filter, update); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated", field: newValue})
}

func (ad *AdminController) ToggleBestseller(ctx *gin.Context) {
	ad.toggleProductFlag(ctx, "is_bestseller", func(p models.Product) bool { return p.IsBestseller })
}

func (ad *AdminController) ToggleNew(ctx *gin.Context) {
	ad.toggleProductFlag(ctx, "is_new", func(p models.Product) bool { return p.IsNew })
}

func (ad *AdminController) ToggleStock(ctx *gin.Context) {
	ad.toggleProductFlag(ctx, "in_stock", func(p models.Product) bool { return p.InStock })
}

// getAWSUploader returns a configured S3 uploader.
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage stores a product image in S3 and points the
// product's image_url at it.
func (ad *AdminController) UploadProductImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	productID := ctx.Param("productId")
	filter := bson.M{"id": productID}

	var product models.Product
	if err := ad.products().FindOne(ctx.Request.Context(), filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "kbeauty-images"
	}

	// Unique key so re-uploads never clobber each other.
	key := fmt.Sprintf("%s-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(ctx.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	update := bson.M{"$set": bson.M{"image_url": result.Location, "updated_at": time.Now().UTC()}}
	if _, err := ad.products().UpdateOne(ctx.Request.Context(), filter, update); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":   "Image uploaded",
		"image_url": result.Location,
	})
}

// GetClients lists client accounts with their order counts and spend.
func (ad *AdminController) GetClients(ctx *gin.Context) {
	cursor, err := ad.users().Find(ctx.Request.Context(), bson.M{"role": models.RoleClient}, options.Find().SetLimit(100))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch clients", err)
		return
	}

	clients := []models.User{}
	if err := cursor.All(ctx.Request.Context(), &clients); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode clients", err)
		return
	}

	result := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		ordersCount, err := ad.orders().CountDocuments(ctx.Request.Context(), bson.M{"user_id": client.ID})
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to count orders", err)
			return
		}

		totalSpent, err := ad.sumOrderTotals(ctx.Request.Context(), bson.M{
			"user_id": client.ID,
			"status":  bson.M{"$ne": models.StatusCancelled},
		})
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to compute client spend", err)
			return
		}

		result = append(result, gin.H{
			"id":           client.ID,
			"email":        client.Email,
			"first_name":   client.FirstName,
			"last_name":    client.LastName,
			"phone":        client.Phone,
			"created_at":   client.CreatedAt,
			"orders_count": ordersCount,
			"total_spent":  totalSpent,
		})
	}

	ctx.JSON(http.StatusOK, result)
}

// GetClientDetails returns one client with their order history.
func (ad *AdminController) GetClientDetails(ctx *gin.Context) {
	filter := bson.M{"id": ctx.Param("clientId"), "role": models.RoleClient}

	var client models.User
	if err := ad.users().FindOne(ctx.Request.Context(), filter).Decode(&client); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(ctx, http.StatusNotFound, "Client not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch client", err)
		}
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(50)
	cursor, err := ad.orders().Find(ctx.Request.Context(), bson.M{"user_id": client.ID}, findOpts)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch client orders", err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx.Request.Context(), &orders); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode client orders", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         client.ID,
		"email":      client.Email,
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"phone":      client.Phone,
		"created_at": client.CreatedAt,
		"orders":     orders,
	})
}
