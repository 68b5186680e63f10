package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// IEligibilityPolicy decides which certificate requirements a student meets.
type IEligibilityPolicy interface {
	Evaluate(ctx context.Context, userID string, course *entity.Course) ([]entity.Requirement, error)
}

// PermissivePolicy marks every requirement as met.
type PermissivePolicy struct{}

func (PermissivePolicy) Evaluate(_ context.Context, _ string, _ *entity.Course) ([]entity.Requirement, error) {
	return []entity.Requirement{
		{Name: "course_completion", Description: "Complete all course lessons", Met: true},
		{Name: "assessment", Description: "Pass the final assessment", Met: true},
	}, nil
}

// CompletionPolicy requires a completed enrollment.
type CompletionPolicy struct {
	enrollmentRepo contract.IEnrollmentRepository
}

func NewCompletionPolicy(enrollmentRepo contract.IEnrollmentRepository) *CompletionPolicy {
	return &CompletionPolicy{enrollmentRepo: enrollmentRepo}
}

func (p *CompletionPolicy) Evaluate(ctx context.Context, userID string, course *entity.Course) ([]entity.Requirement, error) {
	enrolled := entity.Requirement{Name: "enrollment", Description: "Be enrolled in the course"}
	completed := entity.Requirement{Name: "course_completion", Description: "Complete all course lessons"}

	enrollment, err := p.enrollmentRepo.GetEnrollment(ctx, course.ID, userID)
	switch {
	case err == nil:
		enrolled.Met = true
		completed.Met = enrollment.Completed
	case errors.Is(err, contract.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}
	return []entity.Requirement{enrolled, completed}, nil
}

// NewEligibilityPolicy picks the policy for the configured mode.
func NewEligibilityPolicy(requireCompletion bool, enrollmentRepo contract.IEnrollmentRepository) IEligibilityPolicy {
	if requireCompletion {
		return NewCompletionPolicy(enrollmentRepo)
	}
	return PermissivePolicy{}
}
