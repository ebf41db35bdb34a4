package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/session"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/logger"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// SessionFrom returns the resolved session, or nil for anonymous requests.
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionCtxKey).(*session.Session)
	return s
}

// PrincipalFrom returns the signed-in account, or nil.
func PrincipalFrom(ctx context.Context) *domain.Principal {
	if s := SessionFrom(ctx); s != nil {
		p := s.Principal
		return &p
	}
	return nil
}

// ResolveSession loads the session behind the cookie, if any, into the
// request context. Resolution failures degrade to anonymous rather than
// blocking the page.
func (h *Handlers) ResolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		sess, err := h.sessions.Resolve(ctx, cookie.Value)
		if err != nil {
			logger.WithContext(ctx, h.logger).Warn("session resolution failed", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}
		if sess == nil {
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx = logger.WithUserID(ctx, sess.Principal.ID)
		ctx = context.WithValue(ctx, sessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth sends anonymous visitors to the login page.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) == nil {
			SetFlash(w, "error", "Please sign in to continue.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole renders the access-denied page when the signed-in account holds
// a different role. Anonymous visitors are redirected to the login page first.
func (h *Handlers) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFrom(r.Context())
			if sess == nil {
				SetFlash(w, "error", "Please sign in to continue.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if sess.Principal.Role != role {
				p := sess.Principal
				h.renderer.Render(w, r, http.StatusForbidden, "access_denied", PageData{
					Title:     "Access Denied",
					Principal: &p,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
