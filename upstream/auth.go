package upstream

import (
	"context"
	"net/http"

	"gamemart/models"
)

// LoginRequest mirrors the upstream login form; phone number is the
// primary identifier.
type LoginRequest struct {
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type RegisterRequest struct {
	Username             string `json:"username,omitempty"`
	PhoneNumber          string `json:"phone_number"`
	Email                string `json:"email,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type ResetPasswordRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// AuthResponse carries the bearer token and the profile of the account
// that logged in.
type AuthResponse struct {
	status
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.authed(ctx, http.MethodPost, "/logout", token, nil, nil, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPasswordPhone(ctx context.Context, req ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/reset-password-phone", "", nil, req, nil)
}

// AdminStatuses lists admin accounts and their online flags; public read.
func (c *Client) AdminStatuses(ctx context.Context) ([]models.AdminStatus, error) {
	var out struct {
		status
		Data []models.AdminStatus `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin-status", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
