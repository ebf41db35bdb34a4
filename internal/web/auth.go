package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/logger"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/validator"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	FirstName       string `validate:"required,max=50"`
	LastName        string `validate:"required,max=50"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// authFormData feeds the login and register templates.
type authFormData struct {
	Values map[string]string
	Errors map[string]string
}

// LoginPage shows the sign-in form. Signed-in visitors go straight to their
// landing page.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFrom(r.Context()); sess != nil {
		http.Redirect(w, r, landingPath(sess.Principal), http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "login", h.page(w, r, "Sign In", authFormData{}))
}

// Login validates the form locally, then exchanges credentials for tokens and
// establishes a server-side session. A disabled account is rejected and no
// tokens are retained.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), nil)
		return
	}
	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := validator.Validate(form); err != nil {
		h.renderLogin(w, r, form.Email, validationFields(err))
		return
	}

	ctx := r.Context()
	pair, err := h.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			h.renderLogin(w, r, form.Email, map[string]string{"Form": "Invalid email or password."})
			return
		}
		h.renderer.RenderError(w, r, err, nil)
		return
	}

	principal, err := h.api.WithToken(pair.AccessToken).MyDetails(ctx)
	if err != nil {
		h.renderer.RenderError(w, r, err, nil)
		return
	}

	sess, err := h.sessions.Establish(ctx, pair, principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountDisabled) {
			h.renderLogin(w, r, form.Email, map[string]string{"Form": "This account has been disabled. Contact support."})
			return
		}
		h.renderer.RenderError(w, r, err, nil)
		return
	}

	logger.WithContext(ctx, h.logger).Info("user signed in", slog.String("user_id", principal.ID), slog.String("role", principal.Role))
	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, landingPath(principal), http.StatusSeeOther)
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, email string, fieldErrors map[string]string) {
	h.renderer.Render(w, r, http.StatusUnprocessableEntity, "login", h.page(w, r, "Sign In", authFormData{
		Values: map[string]string{"Email": email},
		Errors: fieldErrors,
	}))
}

// RegisterPage shows the account creation form.
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if SessionFrom(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "register", h.page(w, r, "Create Account", authFormData{}))
}

// Register validates the form locally before any network call, then creates
// the account and sends the visitor to the sign-in page.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), nil)
		return
	}
	form := registerForm{
		FirstName:       r.PostFormValue("firstname"),
		LastName:        r.PostFormValue("lastname"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := validator.Validate(form); err != nil {
		h.renderRegister(w, r, form, validationFields(err))
		return
	}

	err := h.api.Register(r.Context(), gateway.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			h.renderRegister(w, r, form, map[string]string{"Email": "is already registered"})
			return
		}
		h.renderer.RenderError(w, r, err, nil)
		return
	}

	SetFlash(w, "success", "Account created. Please sign in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) renderRegister(w http.ResponseWriter, r *http.Request, form registerForm, fieldErrors map[string]string) {
	h.renderer.Render(w, r, http.StatusUnprocessableEntity, "register", h.page(w, r, "Create Account", authFormData{
		Values: map[string]string{
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
		},
		Errors: fieldErrors,
	}))
}

// Logout destroys the session and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFrom(r.Context()); sess != nil {
		if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
			logger.WithContext(r.Context(), h.logger).Warn("destroy session", slog.String("error", err.Error()))
		}
	}
	h.clearSessionCookie(w)
	SetFlash(w, "success", "You have been signed out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Account shows the signed-in user's profile, refreshed from the backend.
func (h *Handlers) Account(w http.ResponseWriter, r *http.Request) {
	principal, err := h.apiFor(r).MyDetails(r.Context())
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "account", h.page(w, r, "My Account", principal))
}

// landingPath picks the post-login destination by role.
func landingPath(p domain.Principal) string {
	if p.IsAdmin() {
		return "/admin/products"
	}
	return "/"
}

// validationFields flattens a validation error into per-field messages.
func validationFields(err error) map[string]string {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields()
	}
	return map[string]string{"Form": err.Error()}
}
