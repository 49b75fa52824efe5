package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-market/internal/domain"
)

type CartHandler struct {
	cartSvs CartServicer
}

func NewCartHandler(cartSvs CartServicer) *CartHandler {
	return &CartHandler{
		cartSvs: cartSvs,
	}
}

type CartLineResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Stock       int32     `json:"stock"`
	Quantity    int32     `json:"quantity"`
	SellerID    int64     `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CartItemResponse struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

// Index GET RouteGroup + CartRoute. Корзина текущего юзера с живыми ценой и остатком.
func (h *CartHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	lines, err := h.cartSvs.List(ctx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]CartLineResponse, len(lines))
	for i, line := range lines {
		response[i] = cartLineResponse(line)
	}
	c.JSON(http.StatusOK, response)
}

type addToCartParams struct {
	ProductID int64 `binding:"required,gt=0" json:"productId"`
	Quantity  int32 `binding:"required,gt=0" json:"quantity"`
}

// Create POST RouteGroup + CartRoute. Кладет товар в корзину, повторное
// добавление наращивает количество существующей строки.
func (h *CartHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params addToCartParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := h.cartSvs.Add(ctx, currentUserID, params.ProductID, params.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartItemResponse(item))
}

type updateCartItemParams struct {
	Quantity int32 `binding:"required,gt=0" json:"quantity"`
}

// Update PUT RouteGroup + CartItemRoute. Меняет количество в строке корзины.
func (h *CartHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	cartItemID, ok := parseIDParam(c, "cartItemID")
	if !ok {
		return
	}

	var params updateCartItemParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := h.cartSvs.UpdateQuantity(ctx, currentUserID, cartItemID, params.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartItemResponse(item))
}

// Delete DELETE RouteGroup + CartItemRoute. Убирает строку из корзины.
func (h *CartHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	cartItemID, ok := parseIDParam(c, "cartItemID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.cartSvs.Remove(ctx, currentUserID, cartItemID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": cartItemID})
}

func cartLineResponse(line domain.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:          line.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Price:       line.Price.InexactFloat64(),
		Stock:       line.Stock,
		Quantity:    line.Quantity,
		SellerID:    line.SellerID,
		SellerName:  line.SellerName,
		CreatedAt:   line.CreatedAt,
	}
}

func cartItemResponse(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
}
