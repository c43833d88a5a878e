package api

import (
	"context"
	"net/http"

	"github.com/mlsaran/smarttimetable/internal/models"
)

type loginRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyResponse struct {
	AccessToken string `json:"access_token"`
}

// Login asks the backend to send a one-time code to the given address.
func (c *Client) Login(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/login/", nil, loginRequest{Email: email}, nil)
}

// VerifyOTP exchanges the one-time code for an access token.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp/", nil, verifyRequest{Email: email, OTP: code}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me returns the identity bound to the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me/", nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
