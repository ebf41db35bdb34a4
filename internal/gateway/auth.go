package gateway

import (
	"context"
	"net/http"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

// TokenPair is the credential pair returned by a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput is the payload for creating a new customer account.
type RegisterInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	body := map[string]string{"email": email, "password": password}

	var env envelope[TokenPair]
	if err := c.postJSON(ctx, "/auth/login", "auth.login", body, &env); err != nil {
		return TokenPair{}, err
	}
	return env.Data, nil
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.postJSON(ctx, "/auth/register", "auth.register", in, nil)
}

// MyDetails returns the profile of the authenticated account.
func (c *Client) MyDetails(ctx context.Context) (domain.Principal, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", "", nil)
	if err != nil {
		return domain.Principal{}, err
	}

	var env envelope[domain.Principal]
	if err := c.doJSON(ctx, req, "auth.me", &env); err != nil {
		return domain.Principal{}, err
	}
	return env.Data, nil
}
