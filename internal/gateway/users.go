package gateway

import (
	"context"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

// UpdateUserInput is the payload for the admin user edit form.
type UpdateUserInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// CreateAdminInput is the payload for provisioning an administrator account.
type CreateAdminInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ListUsers returns every account visible to the administrator.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/admin/users", "", nil)
	if err != nil {
		return nil, err
	}

	var env envelope[[]domain.User]
	if err := c.doJSON(ctx, req, "users.list", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetUser returns a single account by ID.
func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/admin/users/"+id, "", nil)
	if err != nil {
		return domain.User{}, err
	}

	var env envelope[domain.User]
	if err := c.doJSON(ctx, req, "users.get", &env); err != nil {
		return domain.User{}, err
	}
	return env.Data, nil
}

// UpdateUser saves the edited account fields.
func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) error {
	payload, err := marshalBody(in, "users.update")
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/auth/admin/users/"+id, "application/json", payload)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "users.update", nil)
}

// ToggleUserActive flips an account between enabled and disabled.
func (c *Client) ToggleUserActive(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/auth/admin/users/"+id+"/toggle", "", nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "users.toggle", nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/auth/admin/users/"+id, "", nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "users.delete", nil)
}

// CreateAdmin provisions a new administrator account.
func (c *Client) CreateAdmin(ctx context.Context, in CreateAdminInput) error {
	return c.postJSON(ctx, "/auth/admin/register", "users.create_admin", in, nil)
}
