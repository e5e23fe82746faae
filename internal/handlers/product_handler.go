package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/cache"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/services"
)

const (
	productCacheTTL = 5 * time.Minute
	listCacheTTL    = 2 * time.Minute
)

type ProductHandler struct {
	service *services.ProductService
	cache   *cache.Cache
}

func NewProductHandler(service *services.ProductService, c *cache.Cache) *ProductHandler {
	return &ProductHandler{
		service: service,
		cache:   c,
	}
}

// GetProducts lists the catalog with pagination, filtering and sorting.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := models.ProductQuery{
		Page:     page,
		Limit:    limit,
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	cacheKey := fmt.Sprintf(
		"products:list:p%d_l%d_cat:%s_sort:%s_q:%s",
		query.Page, query.Limit, query.Category, query.Sort, query.Search,
	)
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	response := Response{
		Success:    true,
		Message:    "Products retrieved successfully",
		Data:       products,
		Pagination: newPagination(page, limit, total),
	}

	h.cache.Set(cacheKey, response, listCacheTTL)
	c.JSON(http.StatusOK, response)
}

// GetProduct returns a single product, read through the cache.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	cacheKey := "product:" + productID

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := Response{
		Success: true,
		Message: "Product retrieved successfully",
		Data:    product,
	}
	h.cache.Set(cacheKey, response, productCacheTTL)
	c.JSON(http.StatusOK, response)
}

// GetFeaturedProducts returns the storefront's featured selection.
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	cacheKey := "products:featured"
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.service.GetFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := Response{
		Success: true,
		Message: "Featured products retrieved successfully",
		Data:    products,
	}
	h.cache.Set(cacheKey, response, listCacheTTL)
	c.JSON(http.StatusOK, response)
}

// GetProductsByCategory lists one category.
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.service.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", products)
}

// SearchProducts matches a term against names and descriptions.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", products)
}

// CreateProduct adds a product to the catalog.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateProductCache("")
	respond(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct applies a partial update.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var upd models.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondValidation(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), productID, upd)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateProductCache(productID)
	respond(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateProductCache(productID)
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// invalidateProductCache drops cached reads after a catalog write. An
// empty id drops only the listings.
func (h *ProductHandler) invalidateProductCache(id string) {
	if id != "" {
		h.cache.Delete("product:" + id)
	}
	h.cache.DeleteByPrefix("products:")
}
