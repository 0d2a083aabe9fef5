package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

type actorKey struct{}

// WithActor stores the actor in ctx.
func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor attached by Authenticate, if any.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

type actorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignActor issues an HS256 token carrying the actor as sub and role.
func SignActor(secret string, a domain.Actor, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := actorClaims{
		Role: string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseActor validates an HS256 token and returns its actor.
func ParseActor(tokenStr, secret string) (domain.Actor, error) {
	if secret == "" {
		return domain.Actor{}, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &actorClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return domain.Actor{}, err
	}
	c, _ := tok.Claims.(*actorClaims)
	if c == nil || strings.TrimSpace(c.Subject) == "" {
		return domain.Actor{}, errors.New("invalid claims: empty subject")
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(c.Role)))
	if !role.Valid() {
		return domain.Actor{}, fmt.Errorf("invalid claims: role %q", c.Role)
	}
	return domain.Actor{Role: role, ID: strings.TrimSpace(c.Subject)}, nil
}

// Authenticate attaches the bearer token's actor to the request. Requests
// without an Authorization header pass through anonymously; a malformed or
// invalid token is rejected with 401.
func Authenticate(secret string, logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			actor, err := ParseActor(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				logger.Warn("bearer token rejected",
					logx.String("path", r.URL.Path),
					logx.Err(err),
				)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole answers 401 for anonymous requests and 403 for actors outside
// roles. Without roles any authenticated actor passes.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if len(roles) > 0 && !hasRole(roles, actor.Role) {
				writeError(w, http.StatusForbidden, "role "+string(actor.Role)+" not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "{\"error\":%q}\n", msg)
}
