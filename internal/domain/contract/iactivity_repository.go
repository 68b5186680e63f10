package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IActivityRepository interface {
	CreateActivity(ctx context.Context, activity *entity.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error)
}
