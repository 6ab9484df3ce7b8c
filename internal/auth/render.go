package auth

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Renderer executes page templates, or falls back to JSON when no
// templates directory is configured.
type Renderer struct {
	templates      *template.Template
	sessionManager *SessionManager
}

// NewRenderer parses every *.html file in templatesPath. An empty path
// yields a JSON-only renderer.
func NewRenderer(templatesPath string, sessionManager *SessionManager) (*Renderer, error) {
	r := &Renderer{sessionManager: sessionManager}
	if templatesPath == "" {
		return r, nil
	}

	tmpl, err := template.ParseGlob(filepath.Join(templatesPath, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates in %s: %w", templatesPath, err)
	}
	r.templates = tmpl
	return r, nil
}

// Render writes the named page. Pending flashes, the CSRF token and the
// logged-in username are added to data.
func (r *Renderer) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if r.sessionManager != nil {
		data["Flashes"] = r.sessionManager.PopFlashes(c.Request.Context())
	}
	data["CSRFToken"] = GetCSRFToken(c)
	data["Username"] = GetUsername(c)

	if r.templates == nil {
		c.JSON(status, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := r.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}

// Flash queues a message for the next Render call.
func (r *Renderer) Flash(c *gin.Context, category, message string) {
	if r.sessionManager != nil {
		r.sessionManager.Flash(c.Request.Context(), category, message)
	}
}

// FlashRedirect queues a message and redirects, the post/redirect/get step
// every form handler ends with.
func (r *Renderer) FlashRedirect(c *gin.Context, category, message, location string) {
	r.Flash(c, category, message)
	c.Redirect(http.StatusFound, location)
}
