package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IStatsRepository interface {
	CountAll(ctx context.Context) (*entity.DashboardStats, error)
	SaveSnapshot(ctx context.Context, snapshot *entity.StatsSnapshot) error
	LatestSnapshots(ctx context.Context, n int) ([]*entity.StatsSnapshot, error)
}

type IContactRepository interface {
	CreateSubmission(ctx context.Context, submission *entity.ContactSubmission) error
	ListSubmissions(ctx context.Context, page, pageSize int) ([]*entity.ContactSubmission, int64, error)
}
