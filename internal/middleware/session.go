package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/recipedesk/internal/session"
)

type contextKey string

const SessionKey contextKey = "session"

// CookieName holds the signed session token.
const CookieName = "recipedesk_session"

const (
	tokenIssuer   = "recipedesk"
	tokenLifetime = 30 * 24 * time.Hour
)

// SessionMiddleware binds every request to a session. The cookie carries an
// HS256 token whose sub claim is the session id. A missing, invalid or expired
// token, or one naming a session the server no longer has, starts a new session.
func SessionMiddleware(secret string, manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if sub, err := ParseSessionToken(secret, c.Value); err == nil {
					id = sub
				} else {
					slog.DebugContext(r.Context(), "Discarding session cookie", "error", err)
				}
			}

			s, created := manager.GetOrCreate(id)
			if created {
				token, err := NewSessionToken(secret, s.ID(), time.Now())
				if err != nil {
					slog.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(tokenLifetime),
				})
			}

			ctx := context.WithValue(r.Context(), SessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewSessionToken signs a token binding the browser to sessionID.
func NewSessionToken(secret, sessionID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken validates tokenString and returns its session id.
func ParseSessionToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session token missing sub claim")
	}
	return claims.Subject, nil
}

// GetSession extracts the session from request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	return s, ok
}
