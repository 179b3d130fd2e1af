package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/services"
	"github.com/scholarbase/scholarbase/internal/middleware"
)

// GoalController handles goal-related operations
type GoalController struct {
	goalService services.GoalService
}

// NewGoalController creates a new GoalController
func NewGoalController(goalService services.GoalService) *GoalController {
	return &GoalController{
		goalService: goalService,
	}
}

// Create records a goal for a scholar
// @Summary Create a goal
// @Description Records a new goal for a scholar
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGoalRequest true "Goal information"
// @Success 201 {object} dto.APIResponse{data=models.Goal} "Goal created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /goals [post]
func (c *GoalController) Create(ctx *gin.Context) {
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	goal, err := c.goalService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      goal,
		Timestamp: time.Now(),
	})
}

// ListByScholar retrieves a scholar's goals
// @Summary List a scholar's goals
// @Description Retrieves all goals of a scholar
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Goal} "Goals retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/goals [get]
func (c *GoalController) ListByScholar(ctx *gin.Context) {
	scholarID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	goals, err := c.goalService.ListByScholar(ctx, scholarID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      goals,
		Timestamp: time.Now(),
	})
}

// Update applies a partial goal update
// @Summary Update a goal
// @Description Applies a partial update; completing a goal stamps completedAt
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID" Format(int64) minimum(1)
// @Param request body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Goal} "Goal updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /goals/{id} [patch]
func (c *GoalController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var patch dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	goal, err := c.goalService.Update(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      goal,
		Timestamp: time.Now(),
	})
}

// Delete removes a goal
// @Summary Delete a goal
// @Description Removes a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Goal deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid goal ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /goals/{id} [delete]
func (c *GoalController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.goalService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Goal deleted successfully"},
		Timestamp: time.Now(),
	})
}
