package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// TemplatesService covers the /templates endpoints.
type TemplatesService struct {
	client *Client
}

// List fetches one page of templates.
func (s *TemplatesService) List(ctx context.Context, page, perPage int) ([]models.Template, Page, error) {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = DefaultPerPage
	}

	query := url.Values{
		"page":     []string{strconv.Itoa(page)},
		"per_page": []string{strconv.Itoa(perPage)},
	}

	var templates []models.Template

	env, err := s.client.get(ctx, "/templates", query, &templates)
	if err != nil {
		return nil, Page{}, err
	}

	return templates, env.Page, nil
}

// Use instantiates a template as a new workflow and returns it.
func (s *TemplatesService) Use(ctx context.Context, id int64) (*models.Workflow, error) {
	var workflow models.Workflow
	if _, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/templates/%d/use", id), nil, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// WebhooksService covers the /webhooks endpoints.
type WebhooksService struct {
	client *Client
}

// WebhookRequest is the create payload.
type WebhookRequest struct {
	WorkflowID int64  `json:"workflow_id" validate:"required"`
	Path       string `json:"path"        validate:"required"`
	Method     string `json:"method"      validate:"required,oneof=GET POST PUT PATCH DELETE"`
}

// List fetches all webhooks.
func (s *WebhooksService) List(ctx context.Context) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	if _, err := s.client.get(ctx, "/webhooks", nil, &webhooks); err != nil {
		return nil, err
	}

	return webhooks, nil
}

// Create registers a webhook for a workflow.
func (s *WebhooksService) Create(ctx context.Context, req WebhookRequest) (*models.Webhook, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var webhook models.Webhook
	if _, err := s.client.send(ctx, http.MethodPost, "/webhooks", req, &webhook); err != nil {
		return nil, err
	}

	return &webhook, nil
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodDelete, fmt.Sprintf("/webhooks/%d", id), nil, nil)

	return err
}

// Test fires a sample payload at the webhook's workflow.
func (s *WebhooksService) Test(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/webhooks/%d/test", id), nil, nil)

	return err
}

// VariablesService covers the /variables endpoints.
type VariablesService struct {
	client *Client
}

// VariableRequest is the create/update payload.
type VariableRequest struct {
	Key        string `json:"key" validate:"required"`
	Value      string `json:"value"`
	Type       string `json:"type,omitempty"`
	WorkflowID *int64 `json:"workflow_id,omitempty"`
}

// List fetches all variables.
func (s *VariablesService) List(ctx context.Context) ([]models.Variable, error) {
	var variables []models.Variable
	if _, err := s.client.get(ctx, "/variables", nil, &variables); err != nil {
		return nil, err
	}

	return variables, nil
}

// Create stores a new variable.
func (s *VariablesService) Create(ctx context.Context, req VariableRequest) (*models.Variable, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var variable models.Variable
	if _, err := s.client.send(ctx, http.MethodPost, "/variables", req, &variable); err != nil {
		return nil, err
	}

	return &variable, nil
}

// Update replaces a variable's value.
func (s *VariablesService) Update(ctx context.Context, id int64, req VariableRequest) (*models.Variable, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var variable models.Variable
	if _, err := s.client.send(ctx, http.MethodPut, fmt.Sprintf("/variables/%d", id), req, &variable); err != nil {
		return nil, err
	}

	return &variable, nil
}

// Delete removes a variable.
func (s *VariablesService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodDelete, fmt.Sprintf("/variables/%d", id), nil, nil)

	return err
}

// VersionsService covers the workflow version endpoints.
type VersionsService struct {
	client *Client
}

// List fetches the saved revisions of a workflow.
func (s *VersionsService) List(ctx context.Context, workflowID int64) ([]models.WorkflowVersion, error) {
	var versions []models.WorkflowVersion
	if _, err := s.client.get(ctx, fmt.Sprintf("/workflows/%d/versions", workflowID), nil, &versions); err != nil {
		return nil, err
	}

	return versions, nil
}

// Create snapshots the current graph as a new revision.
func (s *VersionsService) Create(ctx context.Context, workflowID int64, comment string) (*models.WorkflowVersion, error) {
	body := map[string]any{"comment": comment}

	var version models.WorkflowVersion
	if _, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/workflows/%d/versions", workflowID), body, &version); err != nil {
		return nil, err
	}

	return &version, nil
}

// Restore replaces the working graph with a saved revision.
func (s *VersionsService) Restore(ctx context.Context, workflowID, versionID int64) error {
	path := fmt.Sprintf("/workflows/%d/versions/%d/restore", workflowID, versionID)

	_, err := s.client.send(ctx, http.MethodPost, path, nil, nil)

	return err
}

// AnalyticsService covers the /analytics endpoints.
type AnalyticsService struct {
	client *Client
}

// Summary fetches the dashboard rollup.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary
	if _, err := s.client.get(ctx, "/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// NotificationsService covers the notification settings endpoints.
type NotificationsService struct {
	client *Client
}

// Settings fetches the account notification switches.
func (s *NotificationsService) Settings(ctx context.Context) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	if _, err := s.client.get(ctx, "/notifications/settings", nil, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings replaces the account notification switches.
func (s *NotificationsService) UpdateSettings(ctx context.Context, settings models.NotificationSettings) error {
	_, err := s.client.send(ctx, http.MethodPut, "/notifications/settings", settings, nil)

	return err
}
