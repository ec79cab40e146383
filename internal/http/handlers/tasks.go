package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnia28/task-manager-api/internal/domain"
	"github.com/omnia28/task-manager-api/internal/logger"
	"github.com/omnia28/task-manager-api/internal/repository"
	"github.com/omnia28/task-manager-api/internal/schemas"
)

// ListTasks returns a page of tasks. offset defaults to 0, limit to 10
// and is capped at 100.
func (h *Handler) ListTasks(c *gin.Context) {
	var q schemas.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, schemas.QueryErrors(err))
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		logger.Error("list tasks failed", "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, schemas.NewTaskListResponse(tasks))
}

// CreateTask inserts a new task and returns the stored record.
func (h *Handler) CreateTask(c *gin.Context) {
	var payload schemas.TaskCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, schemas.BindingErrors(err))
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	task := payload.Task()
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		logger.Error("create task failed", "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewTaskResponse(task))
}

// GetTask returns a single task by id.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		logger.Error("get task failed", "id", id, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, schemas.NewTaskResponse(task))
}

// UpdateTask applies a partial update. Only the fields present in the
// body are touched; updated_at is stamped even when the body is empty.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var payload schemas.TaskUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		validationError(c, schemas.BindingErrors(err))
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), id, payload.Changes())
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		logger.Error("update task failed", "id", id, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, schemas.NewTaskResponse(task))
}

// DeleteTask removes a task permanently.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		logger.Error("delete task failed", "id", id, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListTasksByStatus returns every task with the given status.
func (h *Handler) ListTasksByStatus(c *gin.Context) {
	status, err := domain.ParseTaskStatus(c.Param("status"))
	if err != nil {
		validationError(c, []schemas.FieldError{{Field: "status", Message: schemas.InvalidStatusMessage}})
		return
	}

	tasks, err := h.Tasks.ListByStatus(c.Request.Context(), status)
	if err != nil {
		logger.Error("list tasks by status failed", "status", status, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, schemas.NewTaskListResponse(tasks))
}

// ListTasksByPriority returns every task with the given priority.
func (h *Handler) ListTasksByPriority(c *gin.Context) {
	priority, err := domain.ParseTaskPriority(c.Param("priority"))
	if err != nil {
		validationError(c, []schemas.FieldError{{Field: "priority", Message: schemas.InvalidPriorityMessage}})
		return
	}

	tasks, err := h.Tasks.ListByPriority(c.Request.Context(), priority)
	if err != nil {
		logger.Error("list tasks by priority failed", "priority", priority, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, schemas.NewTaskListResponse(tasks))
}
