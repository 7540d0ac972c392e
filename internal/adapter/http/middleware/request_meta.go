package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
)

// RequestMeta binds a fresh request id and the API version to every call.
func RequestMeta(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		envelope.Bind(c, uuid.NewString(), version)
		c.Next()
	}
}
