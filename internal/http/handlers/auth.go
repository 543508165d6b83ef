package handlers

import (
	"errors"
	"net/http"

	"tasktracker/internal/http/middleware"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidCredentials = "Invalid Credentials"
	msgEmailTaken         = "Email already registered"
)

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"error": c.Query("error"),
	})
}

func (h *Handler) Login(c *gin.Context) {
	vals, ok := formValues(c, "email", "password")
	if !ok {
		badRequest(c)
		return
	}
	email, password := vals[0], vals[1]
	ctx := c.Request.Context()

	user, err := h.Auth.Login(ctx, email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.Audit.LogLoginFailed(ctx, email, c.ClientIP(), c.Request.UserAgent())
		redirectWithError(c, "/", msgInvalidCredentials)
		return
	}
	if err != nil {
		dbError(c, "login", err)
		return
	}

	if err := h.setSession(c, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	h.Audit.LogLogin(ctx, user.ID, c.ClientIP(), c.Request.UserAgent())

	if h.Admin.IsAdmin(user) {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Register(c *gin.Context) {
	vals, ok := formValues(c, "email", "password")
	if !ok {
		badRequest(c)
		return
	}
	ctx := c.Request.Context()

	user, err := h.Auth.Register(ctx, vals[0], vals[1])
	if errors.Is(err, service.ErrDuplicateEmail) {
		redirectWithError(c, "/", msgEmailTaken)
		return
	}
	if err != nil {
		dbError(c, "register", err)
		return
	}

	if err := h.setSession(c, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	h.Audit.LogRegister(ctx, user.ID, c.ClientIP(), c.Request.UserAgent())
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	if u := middleware.CurrentUser(c); u != nil {
		h.Audit.LogLogout(c.Request.Context(), u.ID, c.ClientIP(), c.Request.UserAgent())
	}
	h.clearSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}
