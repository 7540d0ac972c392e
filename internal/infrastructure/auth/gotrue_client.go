package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

var ErrAuthNotConfigured = errors.New("auth provider not configured")

// gotrue-go reports non-200 answers as "response status code <n>: <body>".
var statusCodePattern = regexp.MustCompile(`response status code (\d{3})`)

// GoTrueClient resolves access tokens against a GoTrue-compatible auth server
// (GET {baseURL}/user).
type GoTrueClient struct {
	client gotrue.Client
	ready  bool
}

var _ interfaces.IAuthProvider = (*GoTrueClient)(nil)

func NewGoTrueClient(baseURL, apiKey string, httpClient *http.Client) *GoTrueClient {
	if baseURL == "" {
		return &GoTrueClient{}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	client := gotrue.New("", apiKey).
		WithCustomGoTrueURL(baseURL).
		WithClient(*httpClient)
	return &GoTrueClient{client: client, ready: true}
}

// GetUserFromCredential returns nil without error when the server rejects the token.
func (c *GoTrueClient) GetUserFromCredential(ctx context.Context, token string) (*entities.User, error) {
	if !c.ready {
		return nil, ErrAuthNotConfigured
	}
	if token == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.client.WithToken(token).GetUser()
	if err != nil {
		switch rejectedStatus(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, nil
		}
		log.Printf("[auth][gotrue] get user failed err=%v", err)
		return nil, fmt.Errorf("auth request: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	return userFromGoTrue(resp.User), nil
}

func rejectedStatus(err error) int {
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	code, _ := strconv.Atoi(m[1])
	return code
}

func userFromGoTrue(u types.User) *entities.User {
	if u.ID == uuid.Nil {
		return nil
	}
	role := u.Role
	if r, ok := u.AppMetadata["role"].(string); ok && r != "" {
		role = r
	}
	return &entities.User{ID: u.ID.String(), Email: u.Email, Role: role}
}
