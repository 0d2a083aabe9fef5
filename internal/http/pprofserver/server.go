package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rider-dispatch/internal/logx"
)

// Config stores debug listener credentials. Loopback callers need none.
type Config struct {
	User string
	Pass string
}

// Handler serves /debug/pprof/* and /debug/vars behind guard.
func Handler(cfg Config, logger logx.Logger) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	r := chi.NewRouter()
	r.Use(guard(cfg, logger))
	r.Mount("/debug", chimw.Profiler())
	return r
}

// guard admits loopback callers and, when credentials are configured,
// remote callers presenting them via basic auth.
func guard(cfg Config, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			u, p, ok := r.BasicAuth()
			if cfg.User == "" || cfg.Pass == "" || !ok || !secureEq(u, cfg.User) || !secureEq(p, cfg.Pass) {
				logger.Warn("debug endpoint rejected",
					logx.String("remote", r.RemoteAddr),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secureEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
