package services

import (
	"context"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
)

// GoalService defines the interface for goal operations
type GoalService interface {
	Create(ctx context.Context, req dto.CreateGoalRequest) (*models.Goal, error)
	GetByID(ctx context.Context, id int64) (*models.Goal, error)
	ListByScholar(ctx context.Context, scholarID int64) ([]*models.Goal, error)
	Update(ctx context.Context, id int64, patch dto.UpdateGoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, id int64) error
}

type goalServiceImpl struct {
	goalRepo    repositories.IGoalRepository
	scholarRepo repositories.IScholarRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo repositories.IGoalRepository, scholarRepo repositories.IScholarRepository) GoalService {
	return &goalServiceImpl{
		goalRepo:    goalRepo,
		scholarRepo: scholarRepo,
	}
}

// Create records a new goal for a scholar
func (s *goalServiceImpl) Create(ctx context.Context, req dto.CreateGoalRequest) (*models.Goal, error) {
	if _, err := s.scholarRepo.GetByID(ctx, req.ScholarID); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		ScholarID:  req.ScholarID,
		Title:      req.Title,
		Category:   req.Category,
		TargetDate: req.TargetDate,
		Progress:   0,
		Status:     models.WorkStatusPending,
	}
	return s.goalRepo.Create(ctx, goal)
}

// GetByID retrieves one goal
func (s *goalServiceImpl) GetByID(ctx context.Context, id int64) (*models.Goal, error) {
	return s.goalRepo.GetByID(ctx, id)
}

// ListByScholar retrieves all goals of a scholar
func (s *goalServiceImpl) ListByScholar(ctx context.Context, scholarID int64) ([]*models.Goal, error) {
	if _, err := s.scholarRepo.GetByID(ctx, scholarID); err != nil {
		return nil, err
	}
	return s.goalRepo.ListByScholar(ctx, scholarID)
}

// Update applies a partial goal update
func (s *goalServiceImpl) Update(ctx context.Context, id int64, patch dto.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.goalRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.scholarRepo.TouchLastActivity(ctx, goal.ScholarID)

	return goal, nil
}

// Delete removes a goal
func (s *goalServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.goalRepo.Delete(ctx, id)
}
