package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/services"
	"github.com/scholarbase/scholarbase/internal/middleware"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// ScholarController handles scholar-related operations
type ScholarController struct {
	scholarService services.ScholarService
}

// NewScholarController creates a new ScholarController
func NewScholarController(scholarService services.ScholarService) *ScholarController {
	return &ScholarController{
		scholarService: scholarService,
	}
}

func parseScholarListParams(ctx *gin.Context) (dto.ScholarListParams, error) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		return dto.ScholarListParams{}, err
	}

	params := dto.ScholarListParams{
		Search:    ctx.Query("search"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	if program := ctx.Query("program"); program != "" {
		params.Program = &program
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return dto.ScholarListParams{}, err
		}
		params.Year = &year
	}
	if university := ctx.Query("university"); university != "" {
		params.University = &university
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.ScholarStatus(statusStr)
		params.Status = &status
	}

	return params, nil
}

// List retrieves scholars
// @Summary List scholars
// @Description Retrieves a paginated scholar list with goal/task counters, filterable and sortable
// @Tags scholars
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring search across name, email, program and university"
// @Param program query string false "Filter by program"
// @Param year query int false "Filter by year"
// @Param university query string false "Filter by university"
// @Param status query string false "Filter by status" Enums(active, inactive, on_hold)
// @Param sortBy query string false "Sort key" Enums(name, lastActivity, createdAt)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20) maximum(100)
// @Success 200 {object} dto.ListResponse{data=[]dto.ScholarResponse} "Scholars retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars [get]
func (c *ScholarController) List(ctx *gin.Context) {
	params, err := parseScholarListParams(ctx)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	scholars, pagination, err := c.scholarService.List(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Data:       scholars,
		Pagination: pagination,
	})
}

// GetByID retrieves one scholar
// @Summary Get scholar details
// @Description Retrieves one scholar with goal/task counters
// @Tags scholars
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ScholarResponse} "Scholar retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id} [get]
func (c *ScholarController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	scholar, err := c.scholarService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// UpdateProfile updates a scholar profile
// @Summary Update scholar profile
// @Description Applies a partial profile update across the user and scholar records
// @Tags scholars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID" Format(int64) minimum(1)
// @Param request body dto.UpdateScholarProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ScholarResponse} "Scholar updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id} [patch]
func (c *ScholarController) UpdateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var patch dto.UpdateScholarProfileRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	scholar, err := c.scholarService.UpdateProfile(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      scholar,
		Timestamp: time.Now(),
	})
}

// FilterOptions retrieves the scholar-list filter values
// @Summary Get scholar filter options
// @Description Retrieves the distinct programs, years, universities and statuses in use
// @Tags scholars
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScholarFilterOptions} "Filter options retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/filter-options [get]
func (c *ScholarController) FilterOptions(ctx *gin.Context) {
	options, err := c.scholarService.FilterOptions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      options,
		Timestamp: time.Now(),
	})
}
