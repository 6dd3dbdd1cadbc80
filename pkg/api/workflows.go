package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// WorkflowsService covers the /workflows endpoints.
type WorkflowsService struct {
	client *Client
}

// WorkflowRequest is the create/update payload: the name and description
// fields plus the serialized graph.
type WorkflowRequest struct {
	Name        string              `json:"name" validate:"required,min=3"`
	Description string              `json:"description,omitempty"`
	Nodes       []models.Node       `json:"nodes,omitempty"`
	Connections []models.Connection `json:"connections,omitempty"`
}

func workflowPath(id int64, action string) string {
	path := fmt.Sprintf("/workflows/%d", id)
	if action != "" {
		path += "/" + action
	}

	return path
}

// List fetches one page of workflows.
func (s *WorkflowsService) List(ctx context.Context, page int) ([]models.Workflow, Page, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{"page": []string{strconv.Itoa(page)}}

	var workflows []models.Workflow

	env, err := s.client.get(ctx, "/workflows", query, &workflows)
	if err != nil {
		return nil, Page{}, err
	}

	return workflows, env.Page, nil
}

// Get fetches a single workflow with its full graph.
func (s *WorkflowsService) Get(ctx context.Context, id int64) (*models.Workflow, error) {
	var workflow models.Workflow
	if _, err := s.client.get(ctx, workflowPath(id, ""), nil, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// Create saves a new workflow.
func (s *WorkflowsService) Create(ctx context.Context, req WorkflowRequest) (*models.Workflow, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if _, err := s.client.send(ctx, http.MethodPost, "/workflows", req, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// Update replaces a workflow's fields and graph wholesale.
func (s *WorkflowsService) Update(ctx context.Context, id int64, req WorkflowRequest) (*models.Workflow, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if _, err := s.client.send(ctx, http.MethodPut, workflowPath(id, ""), req, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// Delete removes a workflow.
func (s *WorkflowsService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodDelete, workflowPath(id, ""), nil, nil)

	return err
}

// Activate turns a workflow on.
func (s *WorkflowsService) Activate(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPatch, workflowPath(id, "activate"), nil, nil)

	return err
}

// Deactivate turns a workflow off.
func (s *WorkflowsService) Deactivate(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPatch, workflowPath(id, "deactivate"), nil, nil)

	return err
}

// Duplicate clones a workflow server-side.
func (s *WorkflowsService) Duplicate(ctx context.Context, id int64) (*models.Workflow, error) {
	var workflow models.Workflow
	if _, err := s.client.send(ctx, http.MethodPost, workflowPath(id, "duplicate"), nil, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// Execute triggers a manual run with the given input.
func (s *WorkflowsService) Execute(ctx context.Context, id int64, input map[string]any) error {
	if input == nil {
		input = map[string]any{}
	}

	body := map[string]any{"input_data": input}

	_, err := s.client.send(ctx, http.MethodPost, workflowPath(id, "execute"), body, nil)

	return err
}
