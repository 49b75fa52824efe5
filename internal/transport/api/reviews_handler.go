package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-market/internal/domain"
)

type ReviewsHandler struct {
	reviewSvs ReviewServicer
}

func NewReviewsHandler(reviewSvs ReviewServicer) *ReviewsHandler {
	return &ReviewsHandler{
		reviewSvs: reviewSvs,
	}
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Rating    int16     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ByProduct GET RouteGroup + ProductReviewsRoute. Отзывы на товар, без авторизации.
func (h *ReviewsHandler) ByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	reviews, err := h.reviewSvs.ListByProduct(ctx, productID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		response[i] = reviewResponse(&review)
	}
	c.JSON(http.StatusOK, response)
}

type createReviewParams struct {
	ProductID int64  `binding:"required,gt=0"         json:"productId"`
	Rating    int16  `binding:"required,gte=1,lte=5"  json:"rating"`
	Comment   string `binding:"max=5000"              json:"comment"`
}

// Create POST RouteGroup + ReviewsRoute. Отзыв пишется от имени текущего юзера.
func (h *ReviewsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params createReviewParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	review, err := h.reviewSvs.Create(ctx, currentUserID, params.ProductID, params.Rating, params.Comment)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviewResponse(review))
}

type updateReviewParams struct {
	Rating  int16  `binding:"required,gte=1,lte=5" json:"rating"`
	Comment string `binding:"max=5000"             json:"comment"`
}

// Update PUT RouteGroup + ReviewRoute.
func (h *ReviewsHandler) Update(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewID")
	if !ok {
		return
	}

	var params updateReviewParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	review, err := h.reviewSvs.Update(ctx, reviewID, params.Rating, params.Comment)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviewResponse(review))
}

// Delete DELETE RouteGroup + ReviewRoute.
func (h *ReviewsHandler) Delete(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.reviewSvs.Delete(ctx, reviewID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": reviewID})
}

func reviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
