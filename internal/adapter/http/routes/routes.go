package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/limitlessinfotechsolution/WAKILNI-sub000/docs"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/handlers"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/middleware"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/pkg"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Payments       usecase.IPaymentProcessorUseCase
	Auth           interfaces.IAuthProvider
	APIVersion     string
	AllowedOrigins []string
}

var (
	errMethodNotAllowed = pkg.NewDomainErrorSimple("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
	errRouteNotFound    = pkg.NewDomainErrorSimple("NOT_FOUND", "Route not found", http.StatusNotFound)
)

// NewRouter builds the HTTP engine with every route and middleware registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Logger())
	router.Use(middleware.RequestMeta(deps.APIVersion))
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	router.NoMethod(func(c *gin.Context) {
		envelope.Fail(c, errMethodNotAllowed.WithDescription(c.Request.Method+" is not supported on "+c.Request.URL.Path))
	})
	router.NoRoute(func(c *gin.Context) {
		envelope.Fail(c, errRouteNotFound)
	})

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	addPaymentRoutes(router, middleware.Auth(deps.Auth), paymentHandler)

	return router
}

// Run serves router on port until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, router http.Handler, port int, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http][server] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[http][server] shutting down timeout=%s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
