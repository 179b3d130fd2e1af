package services

import (
	"context"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
)

// TaskService defines the interface for task operations
type TaskService interface {
	Create(ctx context.Context, req dto.CreateTaskRequest, assignedBy int64) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByScholar(ctx context.Context, scholarID int64) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	taskRepo    repositories.ITaskRepository
	scholarRepo repositories.IScholarRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repositories.ITaskRepository, scholarRepo repositories.IScholarRepository) TaskService {
	return &taskServiceImpl{
		taskRepo:    taskRepo,
		scholarRepo: scholarRepo,
	}
}

// Create assigns a new task to a scholar
func (s *taskServiceImpl) Create(ctx context.Context, req dto.CreateTaskRequest, assignedBy int64) (*models.Task, error) {
	if _, err := s.scholarRepo.GetByID(ctx, req.ScholarID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ScholarID:  req.ScholarID,
		AssignedBy: assignedBy,
		Title:      req.Title,
		Type:       req.Type,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		Status:     models.WorkStatusPending,
	}
	return s.taskRepo.Create(ctx, task)
}

// GetByID retrieves one task
func (s *taskServiceImpl) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListByScholar retrieves all tasks assigned to a scholar
func (s *taskServiceImpl) ListByScholar(ctx context.Context, scholarID int64) ([]*models.Task, error) {
	if _, err := s.scholarRepo.GetByID(ctx, scholarID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByScholar(ctx, scholarID)
}

// UpdateStatus sets a task status unconditionally. Any transition between
// the known statuses is allowed, including reopening a completed task.
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) (*models.Task, error) {
	task, err := s.taskRepo.UpdateStatus(ctx, id, models.WorkStatus(status))
	if err != nil {
		return nil, err
	}

	s.scholarRepo.TouchLastActivity(ctx, task.ScholarID)

	return task, nil
}

// Delete removes a task
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.taskRepo.Delete(ctx, id)
}
