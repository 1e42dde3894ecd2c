package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recovery logs panics with zap and responds with a generic 500
func recovery(logger *zap.Logger, stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			panicValue := recover()
			if panicValue == nil {
				return
			}
			if ce := logger.Check(zap.ErrorLevel, "[Recovery]"); ce != nil {
				fields := []zap.Field{
					zap.Any("error", panicValue),
					zap.String("path", c.Request.URL.Path),
				}
				if stack {
					fields = append(fields, zap.Stack("stacktrace"))
				}
				ce.Write(fields...)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, map[string]string{
				"Error": http.StatusText(http.StatusInternalServerError),
			})
		}()
		c.Next()
	}
}
