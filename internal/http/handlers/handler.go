package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omnia28/task-manager-api/internal/repository"
	"github.com/omnia28/task-manager-api/internal/schemas"
)

const taskNotFoundDetail = "This task is not found"

type Handler struct {
	Tasks *repository.TaskRepository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Tasks: repository.NewTaskRepository(db),
	}
}

// parseTaskID reads the :id path parameter. On a non-integer value it
// writes the 422 response and reports false.
func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		validationError(c, []schemas.FieldError{{Field: "task_id", Message: "must be an integer"}})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": taskNotFoundDetail})
}

func validationError(c *gin.Context, errs []schemas.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
