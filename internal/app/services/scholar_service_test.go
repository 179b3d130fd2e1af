package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

func TestScholarList_EnrichesWithSummaries(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		listFn: func(ctx context.Context, params dto.ScholarListParams) ([]*repositories.ScholarDetails, dto.PaginationInfo, error) {
			return []*repositories.ScholarDetails{
				{ID: 1, Name: "Ada", Email: "ada@example.com"},
				{ID: 2, Name: "Grace", Email: "grace@example.com"},
			}, dto.PaginationInfo{Page: 1, Limit: 20, TotalItems: 2, TotalPages: 1}, nil
		},
		goalSummariesFn: func(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error) {
			assert.Equal(t, []int64{1, 2}, scholarIDs)
			return map[int64]dto.GoalSummary{
				1: {Total: 4, Completed: 2, InProgress: 1, Pending: 1},
			}, nil
		},
		taskSummariesFn: func(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error) {
			return map[int64]dto.TaskSummary{
				1: {Total: 3, Completed: 1, Overdue: 1},
			}, nil
		},
	}
	svc := NewScholarService(scholarRepo, &mockUserRepo{})

	responses, pagination, err := svc.List(context.Background(), dto.ScholarListParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, 4, responses[0].Goals.Total)
	assert.Equal(t, 2, responses[0].Goals.Completed)
	assert.Equal(t, 3, responses[0].Tasks.Total)
	assert.Equal(t, 1, responses[0].Tasks.Overdue)

	// A scholar with no goals or tasks gets zero-valued counters
	assert.Equal(t, dto.GoalSummary{}, responses[1].Goals)
	assert.Equal(t, dto.TaskSummary{}, responses[1].Tasks)

	assert.Equal(t, int64(2), pagination.TotalItems)
}

func TestScholarGetByID_NotFound(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
			return nil, apperrors.ErrScholarNotFound
		},
	}
	svc := NewScholarService(scholarRepo, &mockUserRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrScholarNotFound)
}

func TestScholarUpdateProfile_ReturnsFreshView(t *testing.T) {
	var gotPatch dto.UpdateScholarProfileRequest
	scholarRepo := &mockScholarRepo{
		updateProfileFn: func(ctx context.Context, scholarID int64, patch dto.UpdateScholarProfileRequest) error {
			gotPatch = patch
			return nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
			return &repositories.ScholarDetails{ID: id, Name: "Ada Updated", Program: "Mathematics"}, nil
		},
		goalSummariesFn: func(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error) {
			return map[int64]dto.GoalSummary{}, nil
		},
		taskSummariesFn: func(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error) {
			return map[int64]dto.TaskSummary{}, nil
		},
	}
	svc := NewScholarService(scholarRepo, &mockUserRepo{})

	name := "Ada Updated"
	program := "Mathematics"
	resp, err := svc.UpdateProfile(context.Background(), 1, dto.UpdateScholarProfileRequest{
		Name:    &name,
		Program: &program,
	})
	require.NoError(t, err)

	require.NotNil(t, gotPatch.Name)
	assert.Equal(t, "Ada Updated", *gotPatch.Name)
	assert.Equal(t, "Ada Updated", resp.Name)
	assert.Equal(t, "Mathematics", resp.Program)
}

func TestTaskUpdateStatus_TouchesScholarActivity(t *testing.T) {
	completedAt := time.Now()
	taskRepo := &mockTaskRepo{
		updateStatusFn: func(ctx context.Context, id int64, status models.WorkStatus) (*models.Task, error) {
			return &models.Task{ID: id, ScholarID: 7, Status: status, CompletedAt: &completedAt}, nil
		},
	}
	var touchedScholar int64
	scholarRepo := &mockScholarRepo{
		touchLastActivityFn: func(ctx context.Context, scholarID int64) {
			touchedScholar = scholarID
		},
	}
	svc := NewTaskService(taskRepo, scholarRepo)

	task, err := svc.UpdateStatus(context.Background(), 3, "completed")
	require.NoError(t, err)

	assert.Equal(t, models.WorkStatusCompleted, task.Status)
	assert.Equal(t, int64(7), touchedScholar)
}

func TestTaskCreate_UnknownScholarRejected(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
			return nil, apperrors.ErrScholarNotFound
		},
	}
	svc := NewTaskService(&mockTaskRepo{}, scholarRepo)

	_, err := svc.Create(context.Background(), dto.CreateTaskRequest{
		ScholarID: 99,
		Title:     "Submit transcript",
		Type:      "paperwork",
		Priority:  "high",
		DueDate:   time.Now().Add(48 * time.Hour),
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrScholarNotFound)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	overdue := &models.Task{Status: models.WorkStatusPending, DueDate: now.Add(-time.Hour)}
	completedLate := &models.Task{Status: models.WorkStatusCompleted, DueDate: now.Add(-time.Hour)}
	upcoming := &models.Task{Status: models.WorkStatusInProgress, DueDate: now.Add(time.Hour)}

	assert.True(t, overdue.IsOverdue(now))
	assert.False(t, completedLate.IsOverdue(now), "completed tasks are never overdue")
	assert.False(t, upcoming.IsOverdue(now))
}
