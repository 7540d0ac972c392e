package envelope

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/pkg"
)

const (
	HeaderAPIVersion = "X-API-Version"
	HeaderRequestID  = "X-Request-ID"

	contextRequestID  = "envelope.request_id"
	contextAPIVersion = "envelope.api_version"
)

// DefaultAPIVersion is reported when no middleware configured one.
const DefaultAPIVersion = "1.0.0"

type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"request_id"`
}

// Envelope is the uniform body of every API response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *pkg.HTTPError  `json:"error"`
	Meta    Meta            `json:"meta"`
}

// Bind stores the per-call request id and API version and mirrors them in headers.
func Bind(c *gin.Context, requestID, version string) {
	c.Set(contextRequestID, requestID)
	c.Set(contextAPIVersion, version)
	c.Header(HeaderRequestID, requestID)
	c.Header(HeaderAPIVersion, version)
}

// RequestID returns the id bound to the call, binding a fresh one when none was.
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(contextRequestID); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	id := uuid.NewString()
	Bind(c, id, version(c))
	return id
}

func version(c *gin.Context) string {
	if v, ok := c.Get(contextAPIVersion); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultAPIVersion
}

func meta(c *gin.Context) Meta {
	id := RequestID(c)
	return Meta{
		Timestamp: time.Now().UTC(),
		Version:   version(c),
		RequestID: id,
	}
}

// OK writes a success envelope around data.
func OK(c *gin.Context, status int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[http][envelope] marshal data failed err=%v", err)
		Fail(c, pkg.NewDomainError("SYSTEM_001", "Internal server error", err, http.StatusInternalServerError))
		return
	}
	OKRaw(c, status, raw)
}

// OKRaw writes a success envelope whose data is raw, byte for byte.
func OKRaw(c *gin.Context, status int, raw json.RawMessage) {
	c.JSON(status, Envelope{Success: true, Data: raw, Meta: meta(c)})
}

// Fail writes an error envelope and aborts the chain.
func Fail(c *gin.Context, appErr *pkg.AppError) {
	httpErr := appErr.ToHTTPError()
	c.AbortWithStatusJSON(appErr.HTTPStatus, Envelope{Success: false, Error: &httpErr, Meta: meta(c)})
}
