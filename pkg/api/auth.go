package api

import (
	"context"
	"net/http"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// AuthService covers the /auth endpoints.
type AuthService struct {
	client *Client
}

// RegisterRequest is the signup form payload.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the password-change form payload.
type ChangePasswordRequest struct {
	CurrentPassword      string `json:"current_password"      validate:"required"`
	Password             string `json:"password"              validate:"required,min=8,nefield=CurrentPassword"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginResult is the session material returned by login and register.
type LoginResult struct {
	Token        string               `json:"token"`
	User         *models.User         `json:"user,omitempty"`
	Organization *models.Organization `json:"organization,omitempty"`
}

// Register creates an account and returns the fresh session material.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var result LoginResult
	if _, err := s.client.send(ctx, http.MethodPost, "/auth/register", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Login exchanges credentials for a token plus the user and organization
// blobs.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var result LoginResult
	if _, err := s.client.send(ctx, http.MethodPost, "/auth/login", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Logout invalidates the server-side session. The local session is cleared
// by the caller regardless of the outcome.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.send(ctx, http.MethodPost, "/auth/logout", nil, nil)

	return err
}

// ChangePassword rotates the account password.
func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := s.client.validateRequest(req); err != nil {
		return err
	}

	_, err := s.client.send(ctx, http.MethodPost, "/auth/change-password", req, nil)

	return err
}
