package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/services"
	"github.com/scholarbase/scholarbase/internal/middleware"
)

// TaskController handles task-related operations
type TaskController struct {
	taskService services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService services.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// Create assigns a task to a scholar
// @Summary Create a task
// @Description Assigns a new task to a scholar
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task information"
// @Success 201 {object} dto.APIResponse{data=models.Task} "Task created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	task, err := c.taskService.Create(ctx, req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      task,
		Timestamp: time.Now(),
	})
}

// ListByScholar retrieves a scholar's tasks
// @Summary List a scholar's tasks
// @Description Retrieves all tasks assigned to a scholar
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Scholar ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Task} "Tasks retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid scholar ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Scholar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scholars/{id}/tasks [get]
func (c *TaskController) ListByScholar(ctx *gin.Context) {
	scholarID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	tasks, err := c.taskService.ListByScholar(ctx, scholarID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      tasks,
		Timestamp: time.Now(),
	})
}

// UpdateStatus sets a task status
// @Summary Update task status
// @Description Sets a task status; completing a task stamps completedAt
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID" Format(int64) minimum(1)
// @Param request body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Task} "Task updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tasks/{id}/status [patch]
func (c *TaskController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	task, err := c.taskService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      task,
		Timestamp: time.Now(),
	})
}

// Delete removes a task
// @Summary Delete a task
// @Description Removes a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Task deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid task ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.taskService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Task deleted successfully"},
		Timestamp: time.Now(),
	})
}
