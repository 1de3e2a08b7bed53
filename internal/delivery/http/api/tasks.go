package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PIEROLS15/TaskMasterBackend/internal/models"
	"github.com/PIEROLS15/TaskMasterBackend/internal/services"
)

type taskResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     string    `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.Format(time.DateOnly),
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	tasks, err := h.tasks.ListTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   errListTasksFailed,
			"message": errServerError,
		})
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	DueDate     string  `json:"due_date" binding:"required"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending completed"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid create task request")
		if msg, ok := firstValidationMessage(err, taskMessages); ok {
			abortError(c, http.StatusUnprocessableEntity, msg)
			return
		}
		abortError(c, http.StatusUnprocessableEntity, errInvalidBody)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		h.logger.Warn().
			Str("due_date", req.DueDate).
			Msg("unparseable due date")
		abortError(c, http.StatusUnprocessableEntity, errDueDateInvalid)
		return
	}
	if services.DueDateTooEarly(dueDate, time.Now()) {
		abortError(c, http.StatusUnprocessableEntity, errDueDateTooEarly)
		return
	}

	// The owner is always the authenticated caller. A user_id in the
	// request body is ignored.
	params := services.CreateTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	}
	if req.Status != nil {
		params.Status = *req.Status
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortError(c, http.StatusInternalServerError, errCreateTaskFailed)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleShowTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, taskID, userID)
	if err != nil {
		h.abortTaskFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending completed"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	// Ownership is checked before the body is even read.
	task, err := h.tasks.GetTask(c, taskID, userID)
	if err != nil {
		h.abortTaskFetchError(c, err)
		return
	}

	var req updateTaskRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid update task request")
		if msg, ok := firstValidationMessage(err, taskMessages); ok {
			abortError(c, http.StatusUnprocessableEntity, msg)
			return
		}
		abortError(c, http.StatusUnprocessableEntity, errInvalidBody)
		return
	}

	// Only the validated fields below are persisted. Anything else in
	// the body is dropped.
	params := services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			h.logger.Warn().
				Str("due_date", *req.DueDate).
				Msg("unparseable due date")
			abortError(c, http.StatusUnprocessableEntity, errDueDateInvalid)
			return
		}
		if services.DueDateTooEarly(dueDate, time.Now()) {
			abortError(c, http.StatusUnprocessableEntity, errDueDateTooEarly)
			return
		}
		params.DueDate = &dueDate
	}

	task, err = h.tasks.UpdateTask(c, task, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		abortError(c, http.StatusInternalServerError, errUpdateTaskFailed)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	_, err := h.tasks.GetTask(c, taskID, userID)
	if err != nil {
		h.abortTaskFetchError(c, err)
		return
	}

	err = h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abortError(c, http.StatusInternalServerError, errDeleteTaskFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

// taskIDFromPath parses the :id segment. A non-numeric id never
// matches a task, so it is answered with the same 404 the lookup
// layer produces.
func taskIDFromPath(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortMessage(c, http.StatusNotFound, msgTaskNotFound)
		return 0, false
	}
	return taskID, true
}

func (h *handlerImpl) abortTaskFetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abortMessage(c, http.StatusNotFound, msgTaskNotFound)
	case errors.Is(err, services.ErrTaskForbidden):
		abortMessage(c, http.StatusForbidden, msgTaskForbidden)
	default:
		h.logger.Error().
			Err(err).
			Msg("failed to fetch task")
		abortError(c, http.StatusInternalServerError, errServerError)
	}
}
