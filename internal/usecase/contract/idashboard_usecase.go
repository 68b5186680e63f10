package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IDashboardUseCase interface {
	GetStats(ctx context.Context) (*entity.DashboardStats, error)
	SnapshotStats(ctx context.Context) (*entity.StatsSnapshot, error)
	LatestSnapshots(ctx context.Context, n int) ([]*entity.StatsSnapshot, error)
}

type IContactUseCase interface {
	Submit(ctx context.Context, name, email, subject, message string) (*entity.ContactSubmission, error)
	List(ctx context.Context, page, pageSize int) ([]*entity.ContactSubmission, int64, error)
}
