package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/pkg"
)

// Recovery turns a panic into a SYSTEM_001 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[http][recovery] recovered from panic request_id=%s path=%s panic=%v", envelope.RequestID(c), c.Request.URL.Path, recovered)
		envelope.Fail(c, pkg.NewDomainErrorSimple("SYSTEM_001", "Internal server error", http.StatusInternalServerError))
	})
}
