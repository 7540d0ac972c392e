package interfaces

import (
	"context"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

//go:generate mockgen -source=activity_log_repository_interface.go -destination=mocks/activity_log_repository_mock.go -package=mocks

type IActivityLogRepository interface {
	Append(ctx context.Context, entry entities.ActivityLog) error
}
