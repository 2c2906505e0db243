package backend

import (
	"context"
	"net/http"
	"net/url"

	"roomdesk/pkg/apperrors"
)

// Login authenticates against the backend and stores the issued token in the
// session context. The backend expects OAuth2-style form fields, with the
// email passed as username.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperrors.New(apperrors.CodeValidation, "email and password are required")
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token Token
	err := c.do(ctx, call{
		resource:  "auth",
		method:    http.MethodPost,
		path:      "/auth/login",
		form:      form,
		out:       &token,
		anonymous: true,
	})
	if err != nil {
		return err
	}

	c.sess.Set(token.AccessToken)
	if c.metrics != nil {
		c.metrics.IncrementLogins()
	}
	return nil
}

// Register creates an account and stores the issued token, mirroring the
// login flow so a fresh registration lands in an authenticated session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return apperrors.New(apperrors.CodeValidation, "email, username and password are required")
	}
	if req.Role == "" {
		req.Role = RoleUser
	}

	var token Token
	err := c.do(ctx, call{
		resource:  "auth",
		method:    http.MethodPost,
		path:      "/auth/register",
		json:      req,
		out:       &token,
		anonymous: true,
	})
	if err != nil {
		return err
	}

	c.sess.Set(token.AccessToken)
	if c.metrics != nil {
		c.metrics.IncrementLogins()
	}
	return nil
}

// Me fetches the current user for the stored token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, call{
		resource: "auth",
		method:   http.MethodGet,
		path:     "/auth/me",
		out:      &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session locally. The backend keeps no server-side
// session to revoke; discarding the token is the whole operation.
func (c *Client) Logout() {
	c.sess.Clear()
}
