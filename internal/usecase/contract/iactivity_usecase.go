package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IActivityUseCase interface {
	LogActivity(ctx context.Context, activity *entity.Activity) error
	ListRecentActivities(ctx context.Context, limit int) ([]*entity.Activity, error)
}
