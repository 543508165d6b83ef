package handlers

import (
	"net/http"

	"tasktracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Pages below sit behind middleware.RequireUser.

func (h *Handler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	d, err := h.Tasks.Dashboard(c.Request.Context(), user)
	if err != nil {
		dbError(c, "dashboard", err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":     user,
		"tasks":    d.Tasks,
		"upcoming": d.Upcoming,
		"stats":    d.Stats,
		"error":    c.Query("error"),
	})
}

func (h *Handler) Schedule(c *gin.Context) {
	user := middleware.CurrentUser(c)
	tl, err := h.Tasks.Schedule(c.Request.Context(), user)
	if err != nil {
		dbError(c, "schedule", err)
		return
	}

	c.HTML(http.StatusOK, "schedule.html", gin.H{
		"user":     user,
		"timeline": tl,
	})
}

func (h *Handler) Settings(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"user": middleware.CurrentUser(c),
	})
}
