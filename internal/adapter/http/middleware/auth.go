package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/adapter/http/envelope"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/pkg"
)

const contextUser = "auth.user"

var errUnauthorized = pkg.NewDomainErrorSimple("AUTH_001", "Unauthorized", http.StatusUnauthorized)

// Auth resolves the bearer credential into a user or aborts with AUTH_001.
func Auth(provider interfaces.IAuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			envelope.Fail(c, errUnauthorized.WithDescription("Missing bearer token"))
			return
		}

		user, err := provider.GetUserFromCredential(c.Request.Context(), token)
		if err != nil {
			log.Printf("[http][auth] credential lookup failed request_id=%s err=%v", envelope.RequestID(c), err)
			envelope.Fail(c, errUnauthorized.WithDescription("Could not verify credential"))
			return
		}
		if user == nil || user.ID == "" {
			envelope.Fail(c, errUnauthorized.WithDescription("Invalid or expired token"))
			return
		}

		c.Set(contextUser, *user)
		c.Next()
	}
}

// CurrentUser returns the user bound by Auth.
func CurrentUser(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(contextUser)
	if !ok {
		return entities.User{}, false
	}
	u, ok := v.(entities.User)
	return u, ok
}

// SetUser binds a user to the context; handlers read it through CurrentUser.
func SetUser(c *gin.Context, u entities.User) {
	c.Set(contextUser, u)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
