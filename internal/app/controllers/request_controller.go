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

// RequestController handles scholar-request operations
type RequestController struct {
	requestService services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService services.RequestService) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

func parseRequestListParams(ctx *gin.Context) (dto.RequestListParams, error) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		return dto.RequestListParams{}, err
	}

	params := dto.RequestListParams{
		Search: ctx.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	if scholarIDStr := ctx.Query("scholarId"); scholarIDStr != "" {
		scholarID, err := strconv.ParseInt(scholarIDStr, 10, 64)
		if err != nil {
			return dto.RequestListParams{}, err
		}
		params.ScholarID = &scholarID
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.RequestStatus(statusStr)
		params.Status = &status
	}
	if requestType := ctx.Query("type"); requestType != "" {
		params.Type = &requestType
	}
	if priority := ctx.Query("priority"); priority != "" {
		params.Priority = &priority
	}

	return params, nil
}

// Create submits a request
// @Summary Submit a request
// @Description Submits a new request on behalf of a scholar
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Request information"
// @Success 201 {object} dto.APIResponse{data=models.Request} "Request submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests [post]
func (c *RequestController) Create(ctx *gin.Context) {
	var req dto.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	request, err := c.requestService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// List retrieves requests
// @Summary List requests
// @Description Retrieves a paginated request list, actionable statuses first, enriched with attachments and audit history
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param scholarId query int false "Filter by scholar"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, reviewed, commented)
// @Param type query string false "Filter by request type"
// @Param priority query string false "Filter by priority" Enums(low, medium, high)
// @Param search query string false "Substring search across description and scholar name"
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20) maximum(100)
// @Success 200 {object} dto.ListResponse{data=[]dto.RequestResponse} "Requests retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	params, err := parseRequestListParams(ctx)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	requests, pagination, err := c.requestService.List(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Data:       requests,
		Pagination: pagination,
	})
}

// GetByID retrieves one request
// @Summary Get request details
// @Description Retrieves one request with attachments and audit history
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse} "Request retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests/{id} [get]
func (c *RequestController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := c.requestService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// Review applies a status change
// @Summary Review a request
// @Description Sets a new status, appends the audit entry and notifies the scholar
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Param request body dto.ReviewRequestRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse} "Request reviewed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests/{id}/review [patch]
func (c *RequestController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	request, err := c.requestService.Review(ctx, id, req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// AddAttachment registers an attachment
// @Summary Add a request attachment
// @Description Records object-storage metadata for a file attached to a request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Param request body dto.AddAttachmentRequest true "Attachment metadata"
// @Success 201 {object} dto.APIResponse{data=models.Attachment} "Attachment recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests/{id}/attachments [post]
func (c *RequestController) AddAttachment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddAttachmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	attachment, err := c.requestService.AddAttachment(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      attachment,
		Timestamp: time.Now(),
	})
}

// Stats summarizes requests by status
// @Summary Get request statistics
// @Description Counts the request population by status
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RequestStats} "Statistics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /requests/stats [get]
func (c *RequestController) Stats(ctx *gin.Context) {
	stats, err := c.requestService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
