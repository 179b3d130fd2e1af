package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
	"github.com/scholarbase/scholarbase/internal/pkg/logger"
)

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest, createdBy int64) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.AnnouncementResponse, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*dto.AnnouncementResponse, error)
	ListForScholar(ctx context.Context, scholarID int64) ([]*models.Announcement, error)
	FilterOptions(ctx context.Context) (*dto.AnnouncementFilterOptions, error)
}

type announcementServiceImpl struct {
	announcementRepo repositories.IAnnouncementRepository
	scholarRepo      repositories.IScholarRepository
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo repositories.IAnnouncementRepository, scholarRepo repositories.IScholarRepository) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		scholarRepo:      scholarRepo,
	}
}

func scholarMatchesFilter(scholar *models.Scholar, filter models.AnnouncementFilter) bool {
	switch filter.FilterType {
	case models.FilterTypeProgram:
		return scholar.Program == filter.FilterValue
	case models.FilterTypeYear:
		return strconv.Itoa(scholar.Year) == filter.FilterValue
	case models.FilterTypeUniversity:
		return scholar.University == filter.FilterValue
	case models.FilterTypeStatus:
		return string(scholar.Status) == filter.FilterValue
	case models.FilterTypeLocation:
		return scholar.Location != nil && *scholar.Location == filter.FilterValue
	default:
		return false
	}
}

// computeRecipients resolves which scholars an announcement targets.
// Every filter row is AND-combined, so two filters of the same type with
// different values match nobody. Zero filters match everybody.
func computeRecipients(scholars []models.Scholar, filters []models.AnnouncementFilter) []int64 {
	recipientIDs := make([]int64, 0, len(scholars))
	for i := range scholars {
		match := true
		for _, filter := range filters {
			if !scholarMatchesFilter(&scholars[i], filter) {
				match = false
				break
			}
		}
		if match {
			recipientIDs = append(recipientIDs, scholars[i].ID)
		}
	}
	return recipientIDs
}

// Create persists an announcement with its recipient snapshot. Recipients
// are resolved once against the current scholar population; later profile
// changes do not alter the snapshot.
func (s *announcementServiceImpl) Create(ctx context.Context, req dto.CreateAnnouncementRequest, createdBy int64) (*dto.AnnouncementResponse, error) {
	filters := make([]models.AnnouncementFilter, len(req.Filters))
	for i, f := range req.Filters {
		if !models.ValidFilterType(f.FilterType) {
			return nil, apperrors.ErrInvalidFilterType
		}
		filters[i] = models.AnnouncementFilter{
			FilterType:  models.FilterType(f.FilterType),
			FilterValue: f.FilterValue,
		}
	}

	scholars, err := s.scholarRepo.ListForTargeting(ctx)
	if err != nil {
		return nil, err
	}
	recipientIDs := computeRecipients(scholars, filters)

	announcement := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: createdBy,
	}
	announcement, err = s.announcementRepo.Create(ctx, announcement, filters, recipientIDs)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("announcementId", announcement.ID).
		Int("recipients", len(recipientIDs)).
		Msg("Announcement created")

	for i := range filters {
		filters[i].AnnouncementID = announcement.ID
	}

	return &dto.AnnouncementResponse{
		ID:             announcement.ID,
		Title:          announcement.Title,
		Content:        announcement.Content,
		CreatedBy:      announcement.CreatedBy,
		CreatedAt:      announcement.CreatedAt,
		Filters:        filters,
		RecipientCount: len(recipientIDs),
	}, nil
}

// List returns a page of announcements with their filters and snapshot sizes
func (s *announcementServiceImpl) List(ctx context.Context, page, limit int) ([]dto.AnnouncementResponse, dto.PaginationInfo, error) {
	announcements, pagination, err := s.announcementRepo.List(ctx, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	ids := make([]int64, len(announcements))
	for i, a := range announcements {
		ids[i] = a.ID
	}

	filters, err := s.announcementRepo.FiltersByAnnouncementIDs(ctx, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	counts, err := s.announcementRepo.RecipientCounts(ctx, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		announcementFilters := filters[a.ID]
		if announcementFilters == nil {
			announcementFilters = []models.AnnouncementFilter{}
		}
		responses[i] = dto.AnnouncementResponse{
			ID:             a.ID,
			Title:          a.Title,
			Content:        a.Content,
			CreatedBy:      a.CreatedBy,
			CreatedAt:      a.CreatedAt,
			Filters:        announcementFilters,
			RecipientCount: counts[a.ID],
		}
	}

	return responses, pagination, nil
}

// GetByID retrieves one announcement with its filters and snapshot size
func (s *announcementServiceImpl) GetByID(ctx context.Context, id int64) (*dto.AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	filters, err := s.announcementRepo.FiltersByAnnouncementIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	counts, err := s.announcementRepo.RecipientCounts(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	announcementFilters := filters[id]
	if announcementFilters == nil {
		announcementFilters = []models.AnnouncementFilter{}
	}

	return &dto.AnnouncementResponse{
		ID:             announcement.ID,
		Title:          announcement.Title,
		Content:        announcement.Content,
		CreatedBy:      announcement.CreatedBy,
		CreatedAt:      announcement.CreatedAt,
		Filters:        announcementFilters,
		RecipientCount: counts[id],
	}, nil
}

// ListForScholar returns the announcements whose snapshot includes a scholar
func (s *announcementServiceImpl) ListForScholar(ctx context.Context, scholarID int64) ([]*models.Announcement, error) {
	if _, err := s.scholarRepo.GetByID(ctx, scholarID); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListForScholar(ctx, scholarID)
}

func sortedKeys(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// FilterOptions returns the distinct attribute values scholars currently
// carry, deduplicated in memory from the full population load.
func (s *announcementServiceImpl) FilterOptions(ctx context.Context) (*dto.AnnouncementFilterOptions, error) {
	scholars, err := s.scholarRepo.ListForTargeting(ctx)
	if err != nil {
		return nil, err
	}

	programs := make(map[string]struct{})
	years := make(map[string]struct{})
	universities := make(map[string]struct{})
	locations := make(map[string]struct{})
	statuses := make(map[string]struct{})

	for i := range scholars {
		sc := &scholars[i]
		programs[sc.Program] = struct{}{}
		years[strconv.Itoa(sc.Year)] = struct{}{}
		universities[sc.University] = struct{}{}
		if sc.Location != nil {
			locations[*sc.Location] = struct{}{}
		}
		statuses[string(sc.Status)] = struct{}{}
	}

	return &dto.AnnouncementFilterOptions{
		Programs:     sortedKeys(programs),
		Years:        sortedKeys(years),
		Universities: sortedKeys(universities),
		Locations:    sortedKeys(locations),
		Statuses:     sortedKeys(statuses),
	}, nil
}
