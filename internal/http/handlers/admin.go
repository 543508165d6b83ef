package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

const msgAccessDenied = "Access Denied: You are not authorized to access the admin panel"

func (h *Handler) AdminDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	users, err := h.Admin.ListUsers(c.Request.Context(), user)
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.Redirect(http.StatusSeeOther, "/")
		return
	case errors.Is(err, service.ErrAccessDenied):
		redirectWithError(c, "/dashboard", msgAccessDenied)
		return
	case err != nil:
		dbError(c, "admin list users", err)
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"user":  user,
		"users": users,
	})
}

func (h *Handler) VerifyAdminPassword(c *gin.Context) {
	vals, ok := formValues(c, "password")
	if !ok {
		badRequest(c)
		return
	}

	verified := h.Admin.VerifyPassword(vals[0])
	h.Audit.LogAdminVerify(c.Request.Context(), verified, c.ClientIP(), c.Request.UserAgent())
	if !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid admin password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password verified"})
}

func (h *Handler) UsersWithStats(c *gin.Context) {
	stats, err := h.Admin.ListUsersWithStats(c.Request.Context())
	if err != nil {
		dbError(c, "users with stats", err)
		return
	}
	if stats == nil {
		stats = []domain.UserTaskStats{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": stats})
}

type adminTask struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Status    domain.TaskStatus `json:"status"`
	DueDate   *string           `json:"due_date"`
	CreatedAt *string           `json:"created_at"`
}

func (h *Handler) UserTasks(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	user, tasks, err := h.Admin.GetUserTasks(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		dbError(c, "user tasks", err)
		return
	}

	out := make([]adminTask, 0, len(tasks))
	for _, t := range tasks {
		created := t.CreatedAt
		out = append(out, adminTask{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			DueDate:   isoTime(t.DueDate),
			CreatedAt: isoTime(&created),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_email": user.Email, "tasks": out})
}

// isoTime formats a wall-clock timestamp as YYYY-MM-DDTHH:MM:SS with a
// microsecond suffix only when non-zero. nil and zero times map to null.
func isoTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return &s
}
