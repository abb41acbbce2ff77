package controllers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kbeauty-tn/kbeauty-api/models"
	"github.com/kbeauty-tn/kbeauty-api/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func caseInsensitiveEquals(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}

type ProductController struct {
	DB *mongo.Database
}

func NewProductController(db *mongo.Database) *ProductController {
	return &ProductController{DB: db}
}

func (pc *ProductController) products() *mongo.Collection {
	return pc.DB.Collection("products")
}

// buildFilter assembles the hard filters; the search term is handled
// separately by the strict matcher.
func buildFilter(ctx *gin.Context) bson.M {
	filter := bson.M{}

	if brand := ctx.Query("brand"); brand != "" {
		filter["brand"] = caseInsensitiveEquals(brand)
	}
	if category := ctx.Query("category"); category != "" {
		filter["category"] = caseInsensitiveEquals(category)
	}

	priceFilter := bson.M{}
	if minPrice, err := strconv.Atoi(ctx.Query("min_price")); err == nil {
		priceFilter["$gte"] = minPrice
	}
	if maxPrice, err := strconv.Atoi(ctx.Query("max_price")); err == nil {
		priceFilter["$lte"] = maxPrice
	}
	if len(priceFilter) > 0 {
		filter["price_tnd"] = priceFilter
	}

	return filter
}

// GetProducts lists products with optional hard filters, pagination,
// and the strict search path.
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 500 {
		limit = 20
	}
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	filter := buildFilter(ctx)

	if searchTerm := ctx.Query("search"); searchTerm != "" {
		// Fetch the whole filtered set, then rank in memory. The
		// matcher needs every candidate to score and short-circuit on
		// alias hits.
		cursor, err := pc.products().Find(ctx.Request.Context(), filter)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
			return
		}

		baseProducts := []models.Product{}
		if err := cursor.All(ctx.Request.Context(), &baseProducts); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
			return
		}

		matched := search.MatchProducts(searchTerm, baseProducts)
		total := len(matched)

		start := offset
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"products": matched[start:end],
			"total":    total,
			"limit":    limit,
			"offset":   offset,
		})
		return
	}

	total, err := pc.products().CountDocuments(ctx.Request.Context(), filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to count products", err)
		return
	}

	findOpts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	cursor, err := pc.products().Find(ctx.Request.Context(), filter, findOpts)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx.Request.Context(), &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBestsellers returns the flagged bestsellers.
func (pc *ProductController) GetBestsellers(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "8"))
	if limit < 1 || limit > 20 {
		limit = 8
	}

	findOpts := options.Find().SetLimit(int64(limit))
	cursor, err := pc.products().Find(ctx.Request.Context(), bson.M{"is_bestseller": true}, findOpts)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch bestsellers", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx.Request.Context(), &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode bestsellers", err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// GetProduct returns one product by ID.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	var product models.Product
	err := pc.products().FindOne(ctx.Request.Context(), bson.M{"id": ctx.Param("id")}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

type nameWithCount struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

func (pc *ProductController) groupByField(ctx *gin.Context, field string) ([]nameWithCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := pc.products().Aggregate(ctx.Request.Context(), pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx.Request.Context(), &rows); err != nil {
		return nil, err
	}

	result := []nameWithCount{}
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		result = append(result, nameWithCount{
			Name:         row.ID,
			Slug:         slugify(row.ID),
			ProductCount: row.Count,
		})
	}
	return result, nil
}

// GetBrands lists every brand with its product count.
func (pc *ProductController) GetBrands(ctx *gin.Context) {
	brands, err := pc.groupByField(ctx, "brand")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch brands", err)
		return
	}
	ctx.JSON(http.StatusOK, brands)
}

// GetCategories lists every category with its product count.
func (pc *ProductController) GetCategories(ctx *gin.Context) {
	categories, err := pc.groupByField(ctx, "category")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GetSuggestions serves autocomplete for the search box.
func (pc *ProductController) GetSuggestions(ctx *gin.Context) {
	query := ctx.Query("q")
	if len(query) < 2 {
		respondWithError(ctx, http.StatusBadRequest, "Query must be at least 2 characters", nil)
		return
	}

	cursor, err := pc.products().Find(ctx.Request.Context(), bson.M{})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx.Request.Context(), &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
		return
	}

	ctx.JSON(http.StatusOK, search.Suggest(query, products))
}

// DidYouMean suggests corrections for a misspelled query.
func (pc *ProductController) DidYouMean(ctx *gin.Context) {
	query := ctx.Query("q")
	if len(query) < 2 {
		respondWithError(ctx, http.StatusBadRequest, "Query must be at least 2 characters", nil)
		return
	}

	// Only name and brand matter for corrections.
	findOpts := options.Find().SetProjection(bson.M{"name": 1, "brand": 1})
	cursor, err := pc.products().Find(ctx.Request.Context(), bson.M{}, findOpts)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx.Request.Context(), &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"original_query": query,
		"suggestions":    search.DidYouMean(query, products),
	})
}
