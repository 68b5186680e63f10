package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

const defaultSnapshotCount = 10

// DashboardUsecase serves the admin dashboard counters.
type DashboardUsecase struct {
	statsRepo contract.IStatsRepository
	uuidgen   contract.IUUIDGenerator
	logger    usecasecontract.IAppLogger
	cache     contract.ICourseCache
}

func NewDashboardUsecase(statsRepo contract.IStatsRepository, uuidgen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *DashboardUsecase {
	return &DashboardUsecase{statsRepo: statsRepo, uuidgen: uuidgen, logger: logger}
}

var _ usecasecontract.IDashboardUseCase = (*DashboardUsecase)(nil)

func (uc *DashboardUsecase) SetCache(cache contract.ICourseCache) {
	uc.cache = cache
}

func (uc *DashboardUsecase) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	if uc.cache != nil {
		start := time.Now()
		cached, found, err := uc.cache.GetStats(ctx)
		elapsed := time.Since(start)
		if err == nil && found {
			go metrics.IncCacheHit(metrics.CacheStats)
			go metrics.AddHitDuration(elapsed.Seconds())
			return cached, nil
		}
		go metrics.IncCacheMiss(metrics.CacheStats)
		go metrics.AddMissDuration(elapsed.Seconds())
	}

	stats, err := uc.statsRepo.CountAll(ctx)
	if err != nil {
		uc.logger.Errorf("failed to count dashboard stats: %v", err)
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	if uc.cache != nil {
		_ = uc.cache.SetStats(ctx, stats)
	}
	return stats, nil
}

// SnapshotStats stores the live counts as a point-in-time record.
func (uc *DashboardUsecase) SnapshotStats(ctx context.Context) (*entity.StatsSnapshot, error) {
	stats, err := uc.statsRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stats: %w", err)
	}
	snapshot := &entity.StatsSnapshot{
		ID:             uc.uuidgen.NewUUID(),
		DashboardStats: *stats,
		TakenAt:        time.Now(),
	}
	if err := uc.statsRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save stats snapshot: %w", err)
	}
	return snapshot, nil
}

func (uc *DashboardUsecase) LatestSnapshots(ctx context.Context, n int) ([]*entity.StatsSnapshot, error) {
	if n <= 0 {
		n = defaultSnapshotCount
	}
	if n > maxPageSize {
		n = maxPageSize
	}
	snapshots, err := uc.statsRepo.LatestSnapshots(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return snapshots, nil
}

// ContactUsecase stores contact form submissions.
type ContactUsecase struct {
	contactRepo contract.IContactRepository
	validator   usecasecontract.IValidator
	uuidgen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
}

func NewContactUsecase(contactRepo contract.IContactRepository, validator usecasecontract.IValidator, uuidgen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *ContactUsecase {
	return &ContactUsecase{contactRepo: contactRepo, validator: validator, uuidgen: uuidgen, logger: logger}
}

var _ usecasecontract.IContactUseCase = (*ContactUsecase)(nil)

func (uc *ContactUsecase) Submit(ctx context.Context, name, email, subject, message string) (*entity.ContactSubmission, error) {
	name, message = strings.TrimSpace(name), strings.TrimSpace(message)
	if name == "" || message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrInvalidInput)
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	submission := &entity.ContactSubmission{
		ID:        uc.uuidgen.NewUUID(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		Subject:   strings.TrimSpace(subject),
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uc.contactRepo.CreateSubmission(ctx, submission); err != nil {
		uc.logger.Errorf("failed to store contact submission: %v", err)
		return nil, fmt.Errorf("failed to submit message: %w", err)
	}
	return submission, nil
}

func (uc *ContactUsecase) List(ctx context.Context, page, pageSize int) ([]*entity.ContactSubmission, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	items, total, err := uc.contactRepo.ListSubmissions(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return items, total, nil
}
