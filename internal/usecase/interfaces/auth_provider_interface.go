package interfaces

import (
	"context"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=auth_provider_interface.go -destination=mocks/auth_provider_mock.go -package=mocks

// IAuthProvider resolves a bearer credential into a user.
// A nil user with a nil error means the credential is invalid.
type IAuthProvider interface {
	GetUserFromCredential(ctx context.Context, token string) (*entities.User, error)
}
