package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/transport/api/middlewares"
)

func getUserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentUserIDKey)
}

// parseIDParam разбирает числовой параметр пути. При ошибке сама отвечает 400
// и возвращает false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return 0, false
	}
	return id, true
}

// abortWithServiceError мапит типовые бизнес-ошибки на http статусы.
// Хендлеры с особой логикой статусов (чекаут, логин) делают маппинг сами.
func abortWithServiceError(c *gin.Context, err error) {
	var outOfStock *domain.OutOfStockError

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, domain.ErrOwnerConflict):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, domain.ErrDuplicateKey):
		c.AbortWithStatus(http.StatusConflict)
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidBet),
		errors.Is(err, domain.ErrOwnProduct),
		errors.As(err, &outOfStock):
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
