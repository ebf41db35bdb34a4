package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/logger"
)

//go:embed templates
var templateFS embed.FS

// pageNames lists every page template under templates/pages. Each page is
// parsed together with the layout and partials so pages can override blocks.
var pageNames = []string{
	"home",
	"products",
	"login",
	"register",
	"account",
	"access_denied",
	"error",
	"admin_products",
	"admin_product_form",
	"admin_product_delete",
	"admin_users",
	"admin_user_form",
	"admin_user_delete",
	"admin_create_admin",
}

var templateFuncs = template.FuncMap{
	"currency": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"pageSeq": func(n int) []int {
		seq := make([]int, n)
		for i := range seq {
			seq[i] = i + 1
		}
		return seq
	},
}

// PageData is the envelope every template receives.
type PageData struct {
	Title     string
	Principal *domain.Principal
	Flash     *Flash
	Data      any
}

// Renderer owns the parsed page templates.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func NewRenderer(log *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: log}, nil
}

// Render writes a full page. The template executes into a buffer first so a
// render failure never leaks a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data PageData) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logger.WithContext(req.Context(), r.logger).Error("render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError maps an error to its HTTP status and shows the error page.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, err error, principal *domain.Principal) {
	status := apperrors.HTTPStatus(err)
	message := "Something went wrong. Please try again."
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && status < 500 {
		message = appErr.Message
	}

	logger.WithContext(req.Context(), r.logger).Error("request failed",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	r.Render(w, req, status, "error", PageData{
		Title:     "Error",
		Principal: principal,
		Data:      map[string]any{"Status": status, "Message": message},
	})
}
