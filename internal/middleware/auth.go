package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Auth modes. The service is single-user: "none" trusts the transport
// (typical for localhost), "token" requires a bearer JWT signed with the
// shared secret.
const (
	AuthModeNone  = "none"
	AuthModeToken = "token"
)

type AuthConfig struct {
	Mode   string
	Secret string
}

type Auth struct {
	cfg AuthConfig
}

func NewAuth(cfg AuthConfig) (*Auth, error) {
	switch cfg.Mode {
	case AuthModeNone:
	case AuthModeToken:
		if cfg.Secret == "" {
			return nil, fmt.Errorf("middleware: secret is required in token mode")
		}
	default:
		return nil, fmt.Errorf("middleware: unknown auth mode %q", cfg.Mode)
	}
	return &Auth{cfg: cfg}, nil
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Health check stays open for probes.
		if path.Clean(r.URL.Path) == "/health" || a.cfg.Mode == AuthModeNone {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(a.cfg.Secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SignToken issues an HS256 token for the shared secret, for handing to the
// single user's client.
func SignToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "tasklist",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
