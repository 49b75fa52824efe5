package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-market/internal/domain"
)

type CategoriesHandler struct {
	categorySvs CategoryServicer
}

func NewCategoriesHandler(categorySvs CategoryServicer) *CategoriesHandler {
	return &CategoriesHandler{
		categorySvs: categorySvs,
	}
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type categoryParams struct {
	Name        string `binding:"required,min=1,max=255" json:"name"`
	Description string `binding:"max=5000"               json:"description"`
}

// Index GET RouteGroup + CategoriesRoute.
func (h *CategoriesHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	categories, err := h.categorySvs.List(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = categoryResponse(&cat)
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + CategoriesRoute. Имя категории уникально,
// дубликат вернет 409.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var params categoryParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	category, err := h.categorySvs.Create(ctx, params.Name, params.Description)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse(category))
}

// Update PUT RouteGroup + CategoryRoute.
func (h *CategoriesHandler) Update(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryID")
	if !ok {
		return
	}

	var params categoryParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	category, err := h.categorySvs.Update(ctx, categoryID, params.Name, params.Description)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse(category))
}

// Delete DELETE RouteGroup + CategoryRoute. Товары категории не удаляются,
// их category_id обнуляется.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.categorySvs.Delete(ctx, categoryID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": categoryID})
}

func categoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	}
}
