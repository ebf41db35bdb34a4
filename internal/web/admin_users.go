package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/catalog"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/logger"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/pagination"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/validator"
)

type userForm struct {
	FirstName string `validate:"required,max=50"`
	LastName  string `validate:"required,max=50"`
	Email     string `validate:"required,email"`
	Role      string `validate:"required,oneof=USER ADMIN"`
}

type adminForm struct {
	FirstName       string `validate:"required,max=50"`
	LastName        string `validate:"required,max=50"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// adminUsersView feeds the account list template.
type adminUsersView struct {
	Users     []domain.User
	Page      int
	PageLinks []pageLink
}

// userFormView feeds the account edit form.
type userFormView struct {
	User   domain.User
	Roles  []string
	Errors map[string]string
}

// AdminUsers lists accounts. The backend returns the full set; pagination
// happens here.
func (h *Handlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	users, err := h.apiFor(r).ListUsers(r.Context())
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	totalPages := pagination.TotalPages(len(users), catalog.AdminPageSize)
	if page > totalPages {
		page = 1
	}
	pageUsers := pagination.Slice(users, page, catalog.AdminPageSize)

	links := make([]pageLink, 0, totalPages)
	for n := 1; n <= totalPages; n++ {
		links = append(links, pageLink{
			N:       n,
			URL:     "/admin/users?page=" + strconv.Itoa(n),
			Current: n == page,
		})
	}

	h.renderer.Render(w, r, http.StatusOK, "admin_users", h.page(w, r, "Manage Users", adminUsersView{
		Users:     pageUsers,
		Page:      page,
		PageLinks: links,
	}))
}

// EditUserPage shows the account edit form.
func (h *Handlers) EditUserPage(w http.ResponseWriter, r *http.Request) {
	user, err := h.apiFor(r).GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "admin_user_form", h.page(w, r, "Edit User", userFormView{
		User:  user,
		Roles: domain.ValidRoles(),
	}))
}

// UpdateUser saves the edited account fields and refetches the list.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), PrincipalFrom(r.Context()))
		return
	}
	form := userForm{
		FirstName: r.PostFormValue("firstname"),
		LastName:  r.PostFormValue("lastname"),
		Email:     r.PostFormValue("email"),
		Role:      r.PostFormValue("role"),
	}

	if err := validator.Validate(form); err != nil {
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "admin_user_form", h.page(w, r, "Edit User", userFormView{
			User: domain.User{
				ID:        id,
				FirstName: form.FirstName,
				LastName:  form.LastName,
				Email:     form.Email,
				Role:      form.Role,
			},
			Roles:  domain.ValidRoles(),
			Errors: validationFields(err),
		}))
		return
	}

	err := h.apiFor(r).UpdateUser(r.Context(), id, gateway.UpdateUserInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Role:      form.Role,
	})
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	SetFlash(w, "success", "User updated.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// ToggleUser flips an account between enabled and disabled.
func (h *Handlers) ToggleUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.apiFor(r).ToggleUserActive(r.Context(), id); err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}
	logger.WithContext(r.Context(), h.logger).Info("user toggled", slog.String("target_user_id", id))
	SetFlash(w, "success", "User status changed.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// DeleteUser mirrors the product flow: confirm first, delete only on the
// confirmed resubmission.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), PrincipalFrom(r.Context()))
		return
	}

	switch r.PostFormValue("confirm") {
	case "yes":
		if err := h.apiFor(r).DeleteUser(r.Context(), id); err != nil {
			h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
			return
		}
		logger.WithContext(r.Context(), h.logger).Info("user deleted", slog.String("target_user_id", id))
		SetFlash(w, "success", "User deleted.")
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)

	case "no":
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)

	default:
		user, err := h.apiFor(r).GetUser(r.Context(), id)
		if err != nil {
			h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
			return
		}
		h.renderer.Render(w, r, http.StatusOK, "admin_user_delete", h.page(w, r, "Delete User", user))
	}
}

// CreateAdminPage shows the administrator provisioning form.
func (h *Handlers) CreateAdminPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "admin_create_admin", h.page(w, r, "New Administrator", authFormData{}))
}

// CreateAdmin provisions a new administrator account.
func (h *Handlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), PrincipalFrom(r.Context()))
		return
	}
	form := adminForm{
		FirstName:       r.PostFormValue("firstname"),
		LastName:        r.PostFormValue("lastname"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := validator.Validate(form); err != nil {
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "admin_create_admin", h.page(w, r, "New Administrator", authFormData{
			Values: map[string]string{
				"FirstName": form.FirstName,
				"LastName":  form.LastName,
				"Email":     form.Email,
			},
			Errors: validationFields(err),
		}))
		return
	}

	err := h.apiFor(r).CreateAdmin(r.Context(), gateway.CreateAdminInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			h.renderer.Render(w, r, http.StatusUnprocessableEntity, "admin_create_admin", h.page(w, r, "New Administrator", authFormData{
				Values: map[string]string{"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email},
				Errors: map[string]string{"Email": "is already registered"},
			}))
			return
		}
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	SetFlash(w, "success", "Administrator account created.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
