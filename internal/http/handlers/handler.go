package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"tasktracker/internal/logger"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge int // seconds; 0 makes a browser-session cookie
	Secure bool
}

type Handler struct {
	Auth   *service.AuthService
	Tasks  *service.TaskService
	Admin  *service.AdminService
	Audit  *service.AuditService
	Codec  service.SessionCodec
	Cookie CookieConfig
}

// formValues returns the named form fields in order, or false when any of
// them is absent from the request.
func formValues(c *gin.Context, keys ...string) ([]string, bool) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := c.GetPostForm(k)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
}

func dbError(c *gin.Context, msg string, err error) {
	logger.WithContext(c.Request.Context()).Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
}

// redirectWithError sends a 303 to path carrying msg in the error query
// parameter.
func redirectWithError(c *gin.Context, path, msg string) {
	u := url.URL{Path: path, RawQuery: url.Values{"error": {msg}}.Encode()}
	c.Redirect(http.StatusSeeOther, u.String())
}

// backToList returns to the schedule when the request came from it,
// otherwise to the dashboard.
func backToList(c *gin.Context) {
	if strings.Contains(c.GetHeader("Referer"), "schedule") {
		c.Redirect(http.StatusSeeOther, "/schedule")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) setSession(c *gin.Context, email string) error {
	token, err := h.Codec.Encode(email)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, token, h.Cookie.MaxAge, "/", "", h.Cookie.Secure, true)
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
}
