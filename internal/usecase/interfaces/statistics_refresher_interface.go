package interfaces

import "context"

//go:generate mockgen -source=statistics_refresher_interface.go -destination=mocks/statistics_refresher_mock.go -package=mocks

// IStatisticsRefresher rebuilds cached admin statistics. Only some backends have them.
type IStatisticsRefresher interface {
	RefreshAdminStatistics(ctx context.Context) error
}
