package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/services"
	"github.com/scholarbase/scholarbase/internal/middleware"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// AnnouncementController handles announcement operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
	}
}

// Create publishes an announcement
// @Summary Create an announcement
// @Description Publishes an announcement; the recipient set is resolved from the filters once at creation
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement with targeting filters"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [post]
func (c *AnnouncementController) Create(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	announcement, err := c.announcementService.Create(ctx, req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      announcement,
		Timestamp: time.Now(),
	})
}

// List retrieves announcements
// @Summary List announcements
// @Description Retrieves a paginated announcement list, newest first
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20) maximum(100)
// @Success 200 {object} dto.ListResponse{data=[]dto.AnnouncementResponse} "Announcements retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [get]
func (c *AnnouncementController) List(ctx *gin.Context) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	announcements, pagination, err := c.announcementService.List(ctx, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Data:       announcements,
		Pagination: pagination,
	})
}

// GetByID retrieves one announcement
// @Summary Get announcement details
// @Description Retrieves one announcement with its filters and recipient count
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	announcement, err := c.announcementService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      announcement,
		Timestamp: time.Now(),
	})
}

// ListForScholar retrieves a scholar's announcements
// @Summary List a scholar's announcements
// @Description Retrieves the announcements whose recipient snapshot includes the scholar
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Announcement} "Announcements retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/announcements [get]
func (c *AnnouncementController) ListForScholar(ctx *gin.Context) {
	scholarID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	announcements, err := c.announcementService.ListForScholar(ctx, scholarID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      announcements,
		Timestamp: time.Now(),
	})
}

// FilterOptions retrieves the targeting filter values
// @Summary Get announcement filter options
// @Description Retrieves the distinct scholar attribute values usable as targeting filters
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementFilterOptions} "Filter options retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/filter-options [get]
func (c *AnnouncementController) FilterOptions(ctx *gin.Context) {
	options, err := c.announcementService.FilterOptions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      options,
		Timestamp: time.Now(),
	})
}
