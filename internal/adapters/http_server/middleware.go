package httpserver

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"dune_tours/internal/adapters/observability"
	"dune_tours/internal/app"
	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
	"dune_tours/internal/pricing"
)

const (
	langCookie = "dune_lang"
	curCookie  = "dune_cur"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.ObserveHTTP(route, r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("req_id", chimw.GetReqID(r.Context())).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- language/currency preferences ----

type shellKey struct{}

// WithPrefs gives every request its own Shell, seeded from query, cookies
// and Accept-Language in that order. Unknown codes fall through silently.
func WithPrefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sh := app.NewShellWith(resolvePrefs(r))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shellKey{}, sh)))
	})
}

// ShellFrom returns the request's Shell, or a default one outside WithPrefs.
func ShellFrom(ctx context.Context) *app.Shell {
	if sh, ok := ctx.Value(shellKey{}).(*app.Shell); ok {
		return sh
	}
	return app.NewShell()
}

func resolvePrefs(r *http.Request) app.Prefs {
	p := app.DefaultPrefs()
	q := r.URL.Query()

	if l, ok := locale.Parse(q.Get("lang")); ok {
		p.Language = l
	} else if l, ok := locale.Parse(cookieValue(r, langCookie)); ok {
		p.Language = l
	} else {
		p.Language = locale.Negotiate(r.Header.Get("Accept-Language"))
	}

	if c, ok := pricing.ParseCurrency(q.Get("currency")); ok {
		p.Currency = c
	} else if c, ok := pricing.ParseCurrency(cookieValue(r, curCookie)); ok {
		p.Currency = c
	}
	return p
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func setPrefCookies(w http.ResponseWriter, p app.Prefs) {
	for name, v := range map[string]string{langCookie: string(p.Language), curCookie: string(p.Currency)} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    v,
			Path:     "/",
			MaxAge:   365 * 24 * 3600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ---- admin auth ----

// AdminAuth requires "Authorization: Bearer <token>".
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || got == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				writeError(w, domain.ErrUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeError(w, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
