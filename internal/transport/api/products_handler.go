package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/service"
	"github.com/fsdevblog/groph-market/internal/transport/api/middlewares"
)

type ProductsHandler struct {
	productSvs ProductServicer
}

func NewProductsHandler(productSvs ProductServicer) *ProductsHandler {
	return &ProductsHandler{
		productSvs: productSvs,
	}
}

type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Stock        int32     `json:"stock"`
	TotalSold    int32     `json:"totalSold"`
	SellerID     int64     `json:"sellerId"`
	SellerName   string    `json:"sellerName,omitempty"`
	CategoryID   *int64    `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Index GET RouteGroup + ProductsRoute. Витрина: товары с остатком.
// Для авторизованного юзера его собственные товары скрываются.
func (h *ProductsHandler) Index(c *gin.Context) {
	var excludeSellerID *int64
	if id, ok := c.Get(middlewares.CurrentUserIDKey); ok {
		if userID, castOk := id.(int64); castOk {
			excludeSellerID = &userID
		}
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listings, err := h.productSvs.List(ctx, excludeSellerID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingsResponse(listings))
}

// BySeller GET RouteGroup + SellerRoute. Все товары продавца, включая распроданные.
func (h *ProductsHandler) BySeller(c *gin.Context) {
	sellerID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listings, err := h.productSvs.ListBySeller(ctx, sellerID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingsResponse(listings))
}

type ProductParams struct {
	Name        string          `binding:"required,min=1,max=255" json:"name"`
	Price       decimal.Decimal `binding:"required"               json:"price"`
	Description string          `binding:"max=5000"               json:"description"`
	Stock       int32           `binding:"gte=0"                  json:"stock"`
	CategoryID  *int64          `json:"categoryId"`
}

// Create POST RouteGroup + ProductsRoute. Выставляет товар на продажу от имени текущего юзера.
func (h *ProductsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params ProductParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if params.Price.IsNegative() {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "price must be non-negative"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productSvs.Create(ctx, currentUserID, service.CreateProductArgs{
		Name:        params.Name,
		Price:       params.Price,
		Description: params.Description,
		Stock:       params.Stock,
		CategoryID:  params.CategoryID,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse(product))
}

// Update PUT RouteGroup + ProductRoute. Меняет товар, право есть только у владельца.
func (h *ProductsHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	var params ProductParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if params.Price.IsNegative() {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "price must be non-negative"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productSvs.Update(ctx, currentUserID, service.UpdateProductArgs{
		ID:          productID,
		Name:        params.Name,
		Price:       params.Price,
		Description: params.Description,
		Stock:       params.Stock,
		CategoryID:  params.CategoryID,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse(product))
}

// Delete DELETE RouteGroup + ProductRoute. Снимает товар с продажи вместе со связанными
// строками корзин и упоминаниями.
func (h *ProductsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.productSvs.Delete(ctx, currentUserID, productID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": productID})
}

func productResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Description: p.Description,
		Stock:       p.Stock,
		TotalSold:   p.TotalSold,
		SellerID:    p.SellerID,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

func listingsResponse(listings []domain.ProductListing) []ProductResponse {
	response := make([]ProductResponse, len(listings))
	for i, l := range listings {
		response[i] = productResponse(&l.Product)
		response[i].SellerName = l.SellerName
		response[i].CategoryName = l.CategoryName
	}
	return response
}
