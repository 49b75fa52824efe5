package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет в лог строку о каждом обработанном запросе. Приватные ошибки
// запроса попадают в лог здесь и больше нигде не светятся.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := l.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"clientIP": c.ClientIP(),
		})

		for _, ginErr := range c.Errors {
			if ginErr.IsType(gin.ErrorTypePrivate) {
				entry = entry.WithError(ginErr.Err)
			}
		}

		if c.Writer.Status() >= 500 { //nolint:mnd
			entry.Error("request")
		} else {
			entry.Info("request")
		}
	}
}
