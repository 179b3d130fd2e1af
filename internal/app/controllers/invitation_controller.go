package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/services"
	"github.com/scholarbase/scholarbase/internal/middleware"
	"github.com/scholarbase/scholarbase/internal/pkg/helpers"
)

// InvitationController handles invitation operations
type InvitationController struct {
	invitationService services.InvitationService
}

// NewInvitationController creates a new InvitationController
func NewInvitationController(invitationService services.InvitationService) *InvitationController {
	return &InvitationController{
		invitationService: invitationService,
	}
}

// Create issues an invitation
// @Summary Invite a user
// @Description Issues an invitation and emails the signup link
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInvitationRequest true "Invitation information"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Email already registered or invitation pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations [post]
func (c *InvitationController) Create(ctx *gin.Context) {
	var req dto.CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	invitation, err := c.invitationService.Create(ctx, req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      invitation,
		Timestamp: time.Now(),
	})
}

// List retrieves invitations
// @Summary List invitations
// @Description Retrieves a paginated invitation list, newest first, optionally filtered by status
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, accepted, expired, cancelled)
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20) maximum(100)
// @Success 200 {object} dto.ListResponse{data=[]dto.InvitationResponse} "Invitations retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations [get]
func (c *InvitationController) List(ctx *gin.Context) {
	page, limit, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var status *models.InvitationStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.InvitationStatus(statusStr)
		status = &s
	}

	invitations, pagination, err := c.invitationService.List(ctx, status, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Data:       invitations,
		Pagination: pagination,
	})
}

// Resend re-delivers an invitation email
// @Summary Resend an invitation
// @Description Re-sends the invitation email with the original token; capped at 5 resends
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation resent successfully"
// @Failure 400 {object} dto.ErrorResponse "Invitation not pending, expired, or resend limit reached"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations/{id}/resend [post]
func (c *InvitationController) Resend(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	invitation, err := c.invitationService.Resend(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      invitation,
		Timestamp: time.Now(),
	})
}

// Cancel withdraws an invitation
// @Summary Cancel an invitation
// @Description Withdraws a pending invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Invitation cancelled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invitation not pending or expired"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations/{id} [delete]
func (c *InvitationController) Cancel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.invitationService.Cancel(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Invitation cancelled successfully"},
		Timestamp: time.Now(),
	})
}

// Accept redeems an invitation token
// @Summary Accept an invitation
// @Description Creates the invited account from a valid token; public endpoint
// @Tags invitations
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Signup information"
// @Success 201 {object} dto.APIResponse{data=models.User} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations/accept [post]
func (c *InvitationController) Accept(ctx *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.invitationService.Accept(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}
