package middleware

import (
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/types"
	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a short id, honoring one supplied by the
// caller, and echoes it back in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_REQUEST)
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
