package httpapi

import (
	"context"
	"net/http"
	"time"

	"gym-backend-go/internal/services"
)

type contextKey string

const ctxIdentity contextKey = "identity"

const SessionCookie = "gym_session"

// WithSession resolves the session cookie into an Identity. Anonymous or
// expired callers are sent to the login page.
func WithSession(sessions *services.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				seeOther(w, r, "/login")
				return
			}
			identity, err := sessions.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if _, ok := services.AsServiceError(err); !ok {
					writeInternalError(w, r, err)
					return
				}
				clearSessionCookie(w, cookie.Secure)
				seeOther(w, r, "/login")
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentIdentity(r *http.Request) (services.Identity, bool) {
	identity, ok := r.Context().Value(ctxIdentity).(services.Identity)
	return identity, ok
}

// RequireRole lets only the given role through; anyone else lands on their
// own dashboard.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := CurrentIdentity(r)
			if !ok {
				seeOther(w, r, "/login")
				return
			}
			if identity.Role != role {
				seeOther(w, r, dashboardPath(identity.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func dashboardPath(role string) string {
	if role == services.RoleAdmin {
		return "/admin_dashboard"
	}
	return "/user_dashboard"
}

func setSessionCookie(w http.ResponseWriter, session services.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
