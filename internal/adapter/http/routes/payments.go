package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/handlers"
)

const (
	PathProcessPayment = "/process-payment"
	// PathFunctionsProcessPayment keeps edge-function clients working unchanged.
	PathFunctionsProcessPayment = "/functions/v1/process-payment"
	PathPayments                = "/payments"
)

func addPaymentRoutes(rg gin.IRoutes, auth gin.HandlerFunc, paymentHandler *handlers.PaymentHandler) {
	rg.POST(PathProcessPayment, auth, paymentHandler.ProcessPayment)
	rg.POST(PathFunctionsProcessPayment, auth, paymentHandler.ProcessPayment)
	rg.GET(PathPayments+"/:idempotency_key", auth, paymentHandler.GetPaymentStatus)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}
