package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "desaparecidos/internal/core/context"
)

// ClientContext records the visitor's address and agent in the request
// context so submissions can be attributed in logs.
func ClientContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := appctx.WithClient(c.Request.Context(), &appctx.ClientContext{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Referer:   c.Request.Referer(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
