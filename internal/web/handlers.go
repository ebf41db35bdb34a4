package web

import (
	"log/slog"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/catalog"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/session"
)

// Handlers carries the dependencies shared by every page handler.
type Handlers struct {
	api          *gateway.Client
	sessions     *session.Manager
	catalog      *catalog.Cache
	renderer     *Renderer
	logger       *slog.Logger
	cookieName   string
	cookieSecure bool
}

type HandlersConfig struct {
	API          *gateway.Client
	Sessions     *session.Manager
	Catalog      *catalog.Cache
	Renderer     *Renderer
	Logger       *slog.Logger
	CookieName   string
	CookieSecure bool
}

func NewHandlers(cfg HandlersConfig) *Handlers {
	return &Handlers{
		api:          cfg.API,
		sessions:     cfg.Sessions,
		catalog:      cfg.Catalog,
		renderer:     cfg.Renderer,
		logger:       cfg.Logger,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
	}
}

// page assembles the common template envelope for the current request.
func (h *Handlers) page(w http.ResponseWriter, r *http.Request, title string, data any) PageData {
	return PageData{
		Title:     title,
		Principal: PrincipalFrom(r.Context()),
		Flash:     PopFlash(w, r),
		Data:      data,
	}
}

// apiFor returns the gateway client authenticated as the current session.
func (h *Handlers) apiFor(r *http.Request) *gateway.Client {
	if sess := SessionFrom(r.Context()); sess != nil {
		return h.api.WithToken(sess.AccessToken)
	}
	return h.api
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
