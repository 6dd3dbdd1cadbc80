package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// CredentialsService covers the /credentials endpoints. Secret payloads
// travel as opaque maps shaped by the type tag; the credentials package
// owns the field registry.
type CredentialsService struct {
	client *Client
}

// CredentialRequest is the create/update payload.
type CredentialRequest struct {
	Name string         `json:"name" validate:"required"`
	Type string         `json:"type" validate:"required"`
	Data map[string]any `json:"data"`
}

// List fetches all credentials. The endpoint is not paginated.
func (s *CredentialsService) List(ctx context.Context) ([]models.Credential, error) {
	var credentials []models.Credential
	if _, err := s.client.get(ctx, "/credentials", nil, &credentials); err != nil {
		return nil, err
	}

	return credentials, nil
}

// Create stores a new credential.
func (s *CredentialsService) Create(ctx context.Context, req CredentialRequest) (*models.Credential, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var credential models.Credential
	if _, err := s.client.send(ctx, http.MethodPost, "/credentials", req, &credential); err != nil {
		return nil, err
	}

	return &credential, nil
}

// Update replaces a credential's name, type, and payload.
func (s *CredentialsService) Update(ctx context.Context, id int64, req CredentialRequest) (*models.Credential, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var credential models.Credential
	if _, err := s.client.send(ctx, http.MethodPut, fmt.Sprintf("/credentials/%d", id), req, &credential); err != nil {
		return nil, err
	}

	return &credential, nil
}

// Delete removes a credential.
func (s *CredentialsService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodDelete, fmt.Sprintf("/credentials/%d", id), nil, nil)

	return err
}

// Test asks the platform to verify the stored secret against its target.
func (s *CredentialsService) Test(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/credentials/%d/test", id), nil, nil)

	return err
}
