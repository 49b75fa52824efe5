package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/service"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ProductID   int64     `json:"productId"`
	Quantity    int32     `json:"quantity"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Index GET RouteGroup + OrdersRoute.
func (h *OrdersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.orderSvs.List(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = orderResponse(&order)
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + OrderRoute.
func (h *OrdersHandler) Show(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.orderSvs.Get(ctx, orderID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

type createOrderParams struct {
	ProductID   int64           `binding:"required,gt=0" json:"productId"`
	Quantity    int32           `binding:"required,gt=0" json:"quantity"`
	TotalAmount decimal.Decimal `binding:"required"      json:"totalAmount"`
	Status      string          `binding:"omitempty,oneof=PENDING COMPLETED CANCELLED" json:"status"`
}

// Create POST RouteGroup + OrdersRoute. Заказ пишется в журнал от имени
// текущего юзера, статус по умолчанию PENDING.
func (h *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params createOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.orderSvs.Create(ctx, service.CreateOrderArgs{
		UserID:      currentUserID,
		ProductID:   params.ProductID,
		Quantity:    params.Quantity,
		TotalAmount: params.TotalAmount,
		Status:      domain.OrderStatusType(params.Status),
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

type updateOrderParams struct {
	Status string `binding:"required,oneof=PENDING COMPLETED CANCELLED" json:"status"`
}

// Update PUT RouteGroup + OrderRoute. Меняется только статус заказа.
func (h *OrdersHandler) Update(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderID")
	if !ok {
		return
	}

	var params updateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.orderSvs.UpdateStatus(ctx, orderID, domain.OrderStatusType(params.Status))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// Delete DELETE RouteGroup + OrderRoute.
func (h *OrdersHandler) Delete(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.orderSvs.Delete(ctx, orderID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": orderID})
}

func orderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}
