package services

import (
	"context"
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/logger"
)

// ScholarService defines the interface for scholar operations
type ScholarService interface {
	List(ctx context.Context, params dto.ScholarListParams) ([]dto.ScholarResponse, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*dto.ScholarResponse, error)
	UpdateProfile(ctx context.Context, id int64, patch dto.UpdateScholarProfileRequest) (*dto.ScholarResponse, error)
	FilterOptions(ctx context.Context) (*dto.ScholarFilterOptions, error)
}

type scholarServiceImpl struct {
	scholarRepo repositories.IScholarRepository
	userRepo    repositories.IUserRepository
}

// NewScholarService creates a new ScholarService
func NewScholarService(scholarRepo repositories.IScholarRepository, userRepo repositories.IUserRepository) ScholarService {
	return &scholarServiceImpl{
		scholarRepo: scholarRepo,
		userRepo:    userRepo,
	}
}

func toScholarResponse(details *repositories.ScholarDetails, goals dto.GoalSummary, tasks dto.TaskSummary) dto.ScholarResponse {
	return dto.ScholarResponse{
		ID:           details.ID,
		UserID:       details.UserID,
		Name:         details.Name,
		Email:        details.Email,
		ImageURL:     details.ImageURL,
		Program:      details.Program,
		Year:         details.Year,
		University:   details.University,
		Location:     details.Location,
		Status:       details.Status,
		StartDate:    details.StartDate,
		LastActivity: details.LastActivity,
		CreatedAt:    details.CreatedAt,
		Goals:        goals,
		Tasks:        tasks,
	}
}

// List returns a page of scholars enriched with goal and task counters.
// The counters come from two grouped aggregation queries over the page's
// scholar IDs, not from per-row queries.
func (s *scholarServiceImpl) List(ctx context.Context, params dto.ScholarListParams) ([]dto.ScholarResponse, dto.PaginationInfo, error) {
	scholars, pagination, err := s.scholarRepo.List(ctx, params)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	ids := make([]int64, len(scholars))
	for i, sc := range scholars {
		ids[i] = sc.ID
	}

	goalSummaries, err := s.scholarRepo.GoalSummaries(ctx, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	taskSummaries, err := s.scholarRepo.TaskSummaries(ctx, ids, time.Now())
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.ScholarResponse, len(scholars))
	for i, sc := range scholars {
		// Scholars without goals or tasks get zero-valued summaries
		responses[i] = toScholarResponse(sc, goalSummaries[sc.ID], taskSummaries[sc.ID])
	}

	return responses, pagination, nil
}

// GetByID returns one scholar enriched with goal and task counters
func (s *scholarServiceImpl) GetByID(ctx context.Context, id int64) (*dto.ScholarResponse, error) {
	details, err := s.scholarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	goalSummaries, err := s.scholarRepo.GoalSummaries(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	taskSummaries, err := s.scholarRepo.TaskSummaries(ctx, []int64{id}, time.Now())
	if err != nil {
		return nil, err
	}

	response := toScholarResponse(details, goalSummaries[id], taskSummaries[id])
	return &response, nil
}

// UpdateProfile applies a partial profile update and returns the fresh view
func (s *scholarServiceImpl) UpdateProfile(ctx context.Context, id int64, patch dto.UpdateScholarProfileRequest) (*dto.ScholarResponse, error) {
	if err := s.scholarRepo.UpdateProfile(ctx, id, patch); err != nil {
		return nil, err
	}

	logger.Info().Int64("scholarId", id).Msg("Scholar profile updated")

	return s.GetByID(ctx, id)
}

// FilterOptions returns the distinct value sets for the scholar list UI
func (s *scholarServiceImpl) FilterOptions(ctx context.Context) (*dto.ScholarFilterOptions, error) {
	return s.scholarRepo.FilterOptions(ctx)
}
