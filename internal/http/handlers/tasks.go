package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddTask(c *gin.Context) {
	vals, ok := formValues(c, "title", "due_date")
	if !ok {
		badRequest(c)
		return
	}
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	task, err := h.Tasks.AddTask(ctx, user, vals[0], vals[1])
	if errors.Is(err, service.ErrUnauthenticated) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err != nil {
		dbError(c, "add task", err)
		return
	}

	h.Audit.LogTask(ctx, user.ID, domain.AuditActionTaskCreate, task.ID)
	backToList(c)
}

func (h *Handler) CompleteTask(c *gin.Context) {
	h.mutateTask(c, h.Tasks.CompleteTask, domain.AuditActionTaskComplete)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	h.mutateTask(c, h.Tasks.DeleteTask, domain.AuditActionTaskDelete)
}

type taskMutation func(ctx context.Context, actor *domain.User, id int64) error

// mutateTask applies fn to the task named by the id path parameter.
// A missing task is not an error.
func (h *Handler) mutateTask(c *gin.Context, fn taskMutation, action string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	err = fn(ctx, user, id)
	switch {
	case err == nil:
		var actorID int64
		if user != nil {
			actorID = user.ID
		}
		h.Audit.LogTask(ctx, actorID, action, id)
	case errors.Is(err, service.ErrTaskNotFound):
	default:
		dbError(c, action, err)
		return
	}
	backToList(c)
}
