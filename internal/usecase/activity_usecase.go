package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityUsecase appends to and reads the admin activity feed.
type ActivityUsecase struct {
	activityRepo contract.IActivityRepository
	uuidgen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
}

func NewActivityUsecase(activityRepo contract.IActivityRepository, uuidgen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *ActivityUsecase {
	return &ActivityUsecase{activityRepo: activityRepo, uuidgen: uuidgen, logger: logger}
}

var _ usecasecontract.IActivityUseCase = (*ActivityUsecase)(nil)

// LogActivity assigns the id and timestamp and stores the entry.
func (uc *ActivityUsecase) LogActivity(ctx context.Context, activity *entity.Activity) error {
	if activity == nil || activity.Type == "" {
		return fmt.Errorf("%w: activity type is required", ErrInvalidInput)
	}
	activity.ID = uc.uuidgen.NewUUID()
	activity.CreatedAt = time.Now()
	if err := uc.activityRepo.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("failed to store activity: %w", err)
	}
	return nil
}

// ListRecentActivities returns the newest entries first.
func (uc *ActivityUsecase) ListRecentActivities(ctx context.Context, limit int) ([]*entity.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	activities, err := uc.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		uc.logger.Errorf("failed to list activities: %v", err)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
