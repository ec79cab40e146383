package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root returns basic API info and the list of available endpoints.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "This is a Task Management API",
		"endpoints": gin.H{
			"Paginated tasks list":       "GET /tasks",
			"Get a specific task":        "GET /tasks/{task_id}",
			"Create a task":              "POST /tasks",
			"Update a task":              "PUT /tasks/{task_id}",
			"Delete a task":              "DELETE /tasks/{task_id}",
			"Health Check":               "GET /health",
			"Tasks filtered by status":   "GET /tasks/status/{status}",
			"Tasks filtered by priority": "GET /tasks/priority/{priority}",
		},
	})
}
