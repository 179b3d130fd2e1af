package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func targetingPopulation() []models.Scholar {
	return []models.Scholar{
		{ID: 1, Program: "Computer Science", Year: 1, University: "MIT", Location: strPtr("Boston"), Status: models.ScholarStatusActive},
		{ID: 2, Program: "Computer Science", Year: 2, University: "Stanford", Location: strPtr("Palo Alto"), Status: models.ScholarStatusActive},
		{ID: 3, Program: "Physics", Year: 2, University: "MIT", Status: models.ScholarStatusInactive},
	}
}

func TestComputeRecipients_NoFiltersMatchesEveryone(t *testing.T) {
	ids := computeRecipients(targetingPopulation(), nil)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestComputeRecipients_SingleFilter(t *testing.T) {
	ids := computeRecipients(targetingPopulation(), []models.AnnouncementFilter{
		{FilterType: models.FilterTypeProgram, FilterValue: "Computer Science"},
	})
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestComputeRecipients_FiltersAreANDCombined(t *testing.T) {
	ids := computeRecipients(targetingPopulation(), []models.AnnouncementFilter{
		{FilterType: models.FilterTypeProgram, FilterValue: "Computer Science"},
		{FilterType: models.FilterTypeYear, FilterValue: "2"},
	})
	assert.Equal(t, []int64{2}, ids)
}

func TestComputeRecipients_SameTypeTwiceMatchesNobody(t *testing.T) {
	// Two values for one attribute can never both hold for a scholar
	ids := computeRecipients(targetingPopulation(), []models.AnnouncementFilter{
		{FilterType: models.FilterTypeUniversity, FilterValue: "MIT"},
		{FilterType: models.FilterTypeUniversity, FilterValue: "Stanford"},
	})
	assert.Empty(t, ids)
}

func TestComputeRecipients_NilLocationNeverMatches(t *testing.T) {
	ids := computeRecipients(targetingPopulation(), []models.AnnouncementFilter{
		{FilterType: models.FilterTypeLocation, FilterValue: "Boston"},
	})
	assert.Equal(t, []int64{1}, ids)
}

func TestComputeRecipients_StatusFilter(t *testing.T) {
	ids := computeRecipients(targetingPopulation(), []models.AnnouncementFilter{
		{FilterType: models.FilterTypeStatus, FilterValue: "inactive"},
	})
	assert.Equal(t, []int64{3}, ids)
}

func TestAnnouncementCreate_SnapshotsRecipients(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		listForTargetingFn: func(ctx context.Context) ([]models.Scholar, error) {
			return targetingPopulation(), nil
		},
	}

	var persistedRecipients []int64
	var persistedFilters []models.AnnouncementFilter
	announcementRepo := &mockAnnouncementRepo{
		createFn: func(ctx context.Context, announcement *models.Announcement, filters []models.AnnouncementFilter, recipientIDs []int64) (*models.Announcement, error) {
			announcement.ID = 11
			persistedRecipients = recipientIDs
			persistedFilters = filters
			return announcement, nil
		},
	}
	svc := NewAnnouncementService(announcementRepo, scholarRepo)

	resp, err := svc.Create(context.Background(), dto.CreateAnnouncementRequest{
		Title:   "Semester kickoff",
		Content: "Welcome back",
		Filters: []dto.FilterInput{{FilterType: "university", FilterValue: "MIT"}},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, persistedRecipients)
	require.Len(t, persistedFilters, 1)
	assert.Equal(t, models.FilterTypeUniversity, persistedFilters[0].FilterType)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 2, resp.RecipientCount)
}

func TestAnnouncementCreate_RejectsUnknownFilterType(t *testing.T) {
	svc := NewAnnouncementService(&mockAnnouncementRepo{}, &mockScholarRepo{})

	_, err := svc.Create(context.Background(), dto.CreateAnnouncementRequest{
		Title:   "Broken",
		Content: "x",
		Filters: []dto.FilterInput{{FilterType: "department", FilterValue: "CS"}},
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFilterType)
}

func TestAnnouncementFilterOptions_DeduplicatedAndSorted(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		listForTargetingFn: func(ctx context.Context) ([]models.Scholar, error) {
			return targetingPopulation(), nil
		},
	}
	svc := NewAnnouncementService(&mockAnnouncementRepo{}, scholarRepo)

	options, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Computer Science", "Physics"}, options.Programs)
	assert.Equal(t, []string{"1", "2"}, options.Years)
	assert.Equal(t, []string{"MIT", "Stanford"}, options.Universities)
	assert.Equal(t, []string{"Boston", "Palo Alto"}, options.Locations)
	assert.Equal(t, []string{"active", "inactive"}, options.Statuses)
}

func TestAnnouncementGetByID_EmptyFilterListNotNil(t *testing.T) {
	announcementRepo := &mockAnnouncementRepo{
		getByIDFn: func(ctx context.Context, id int64) (*models.Announcement, error) {
			return &models.Announcement{ID: id, Title: "General", Content: "For everyone"}, nil
		},
		filtersByAnnouncementIDsFn: func(ctx context.Context, announcementIDs []int64) (map[int64][]models.AnnouncementFilter, error) {
			return map[int64][]models.AnnouncementFilter{}, nil
		},
		recipientCountsFn: func(ctx context.Context, announcementIDs []int64) (map[int64]int, error) {
			return map[int64]int{9: 3}, nil
		},
	}
	svc := NewAnnouncementService(announcementRepo, &mockScholarRepo{})

	resp, err := svc.GetByID(context.Background(), 9)
	require.NoError(t, err)

	assert.NotNil(t, resp.Filters)
	assert.Empty(t, resp.Filters)
	assert.Equal(t, 3, resp.RecipientCount)
}
