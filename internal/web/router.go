package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/health"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/middleware"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Handlers          *Handlers
	Health            *health.Handler
	Logger            *slog.Logger
	ServiceName       string
	PprofAllowedCIDRs []string
}

// NewRouter assembles the full page and operations surface.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Operations endpoints sit outside the session layer.
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, cfg.Logger)

	h := cfg.Handlers
	r.Group(func(r chi.Router) {
		r.Use(h.ResolveSession)

		// Public storefront
		r.Get("/", h.Home)
		r.Get("/products", h.Products)
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)

		// Signed-in area
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Get("/account", h.Account)
		})

		// Admin console
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequireRole(domain.RoleAdmin))

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			})

			r.Get("/products", h.AdminProducts)
			r.Get("/products/new", h.NewProductPage)
			r.Post("/products", h.CreateProduct)
			r.Get("/products/{id}/edit", h.EditProductPage)
			r.Post("/products/{id}", h.UpdateProduct)
			r.Post("/products/{id}/delete", h.DeleteProduct)

			r.Get("/users", h.AdminUsers)
			r.Get("/users/{id}/edit", h.EditUserPage)
			r.Post("/users/{id}", h.UpdateUser)
			r.Post("/users/{id}/toggle", h.ToggleUser)
			r.Post("/users/{id}/delete", h.DeleteUser)
			r.Get("/users/new-admin", h.CreateAdminPage)
			r.Post("/users/new-admin", h.CreateAdmin)
		})
	})

	return r
}
