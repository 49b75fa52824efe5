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

type TransactionsHandler struct {
	checkoutSvs CheckoutServicer
	balanceSvs  BalanceServicer
}

func NewTransactionsHandler(checkoutSvs CheckoutServicer, balanceSvs BalanceServicer) *TransactionsHandler {
	return &TransactionsHandler{
		checkoutSvs: checkoutSvs,
		balanceSvs:  balanceSvs,
	}
}

type checkoutLineParams struct {
	ProductID   int64           `binding:"required,gt=0" json:"productId"`
	ProductName string          `json:"productName"`
	SellerID    int64           `binding:"required,gt=0" json:"sellerId"`
	Quantity    int32           `binding:"required,gt=0" json:"quantity"`
	Price       decimal.Decimal `binding:"required"      json:"price"`
}

type checkoutParams struct {
	Items []checkoutLineParams `binding:"required,dive" json:"items"`
}

// Checkout POST RouteGroup + CheckoutRoute. Проводит покупку присланных позиций
// корзины одной атомарной операцией: списывает остатки и деньги покупателя,
// зачисляет продавцам, пишет лог продаж и чистит корзину. Любая ошибка
// откатывает все целиком.
func (h *TransactionsHandler) Checkout(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params checkoutParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	lines := make([]service.CheckoutLine, len(params.Items))
	for i, item := range params.Items {
		lines[i] = service.CheckoutLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SellerID:    item.SellerID,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		}
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	newBalance, err := h.checkoutSvs.Checkout(ctx, currentUserID, lines)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "checkout complete",
		"balance": newBalance.InexactFloat64(),
	})
}

type adjustBalanceParams struct {
	Amount decimal.Decimal `binding:"required" json:"amount"`
}

// UpdateBalance POST RouteGroup + AdjustRoute. Пополнение или списание
// произвольной суммы. Баланс не может уйти в минус.
func (h *TransactionsHandler) UpdateBalance(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params adjustBalanceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	newBalance, err := h.balanceSvs.Adjust(ctx, currentUserID, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": newBalance.InexactFloat64()})
}

type gambleParams struct {
	Bet   decimal.Decimal `binding:"required"              json:"bet"`
	Guess int             `binding:"required,gte=1,lte=6"  json:"guess"`
}

// Gamble POST RouteGroup + GambleRoute. Ставка на бросок кубика: угадал -
// чистый выигрыш 4x ставки, не угадал - ставка сгорает.
func (h *TransactionsHandler) Gamble(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params gambleParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.balanceSvs.RollDice(ctx, currentUserID, params.Bet, params.Guess)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rolled":  result.Rolled,
		"won":     result.Won,
		"delta":   result.Delta.InexactFloat64(),
		"balance": result.NewBalance.InexactFloat64(),
	})
}

type TransactionResponse struct {
	ID          int64     `json:"id"`
	BuyerID     int64     `json:"buyerId"`
	BuyerName   string    `json:"buyerName"`
	SellerID    int64     `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int32     `json:"quantity"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Index GET RouteGroup + TransactionsRoute. Лог продаж по убыванию даты.
func (h *TransactionsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	records, err := h.checkoutSvs.History(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]TransactionResponse, len(records))
	for i, rec := range records {
		response[i] = transactionResponse(rec)
	}
	c.JSON(http.StatusOK, response)
}

func transactionResponse(rec domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:          rec.ID,
		BuyerID:     rec.BuyerID,
		BuyerName:   rec.BuyerName,
		SellerID:    rec.SellerID,
		SellerName:  rec.SellerName,
		ProductID:   rec.ProductID,
		ProductName: rec.ProductName,
		Quantity:    rec.Quantity,
		Amount:      rec.Amount.InexactFloat64(),
		CreatedAt:   rec.CreatedAt,
	}
}
