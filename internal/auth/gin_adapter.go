package auth

import (
	"bufio"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

const msgSessionSaveFailed = "Internal server error"

// sessionWriter commits the session the moment the handler first touches
// the response, while the status can still change. If the store refuses
// the commit, a 500 goes out instead of whatever the handler was writing.
type sessionWriter struct {
	gin.ResponseWriter
	sm        *SessionManager
	request   *http.Request
	committed bool
	failed    bool
}

// commit saves the session once and reports whether the handler's
// response may proceed.
func (w *sessionWriter) commit() bool {
	if !w.committed {
		w.committed = true
		if err := w.saveSession(); err != nil {
			w.fail(err)
		}
	}
	return !w.failed
}

func (w *sessionWriter) saveSession() error {
	ctx := w.request.Context()
	switch w.sm.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(ctx)
		if err != nil {
			return err
		}
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
	return nil
}

// fail sends the 500 right away so later header changes by the handler
// (a redirect Location, say) never reach the client.
func (w *sessionWriter) fail(err error) {
	log.Printf("Failed to save session for %s %s: %v", w.request.Method, w.request.URL.Path, err)
	w.failed = true

	header := w.ResponseWriter.Header()
	header.Del("Location")
	header.Del("Content-Length")
	header.Set("Content-Type", "text/plain; charset=utf-8")
	w.ResponseWriter.WriteHeader(http.StatusInternalServerError)
	w.ResponseWriter.WriteHeaderNow()
	_, _ = w.ResponseWriter.Write([]byte(msgSessionSaveFailed))
}

func (w *sessionWriter) WriteHeader(code int) {
	if w.commit() {
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *sessionWriter) WriteHeaderNow() {
	if w.commit() {
		w.ResponseWriter.WriteHeaderNow()
	}
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.commit() {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *sessionWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

// SessionLoadSave is the gin equivalent of scs LoadAndSave. It must run
// before any handler that reads or writes the session, including flashes.
func (sm *SessionManager) SessionLoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		writer := &sessionWriter{
			ResponseWriter: c.Writer,
			sm:             sm,
			request:        c.Request,
		}
		c.Writer = writer

		c.Next()

		// Handlers that never write still need the session committed.
		writer.commit()
	}
}
