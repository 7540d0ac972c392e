package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
)

// Ping godoc
// @Summary  Liveness check
// @Tags     health
// @Produce  json
// @Success  200  {object}  envelope.Envelope
// @Router   /v1/ping [get]
func Ping(c *gin.Context) {
	envelope.OK(c, http.StatusOK, gin.H{"message": "pong"})
}
