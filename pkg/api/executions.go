package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// ExecutionsService covers the /executions endpoints. Executions are
// read-only records; stop and retry are remote actions.
type ExecutionsService struct {
	client *Client
}

// DefaultPerPage matches the page size the dashboard requests.
const DefaultPerPage = 20

// List fetches one page of executions.
func (s *ExecutionsService) List(ctx context.Context, page, perPage int) ([]models.Execution, Page, error) {
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

	var executions []models.Execution

	env, err := s.client.get(ctx, "/executions", query, &executions)
	if err != nil {
		return nil, Page{}, err
	}

	return executions, env.Page, nil
}

// Get fetches a single execution.
func (s *ExecutionsService) Get(ctx context.Context, id int64) (*models.Execution, error) {
	var execution models.Execution
	if _, err := s.client.get(ctx, fmt.Sprintf("/executions/%d", id), nil, &execution); err != nil {
		return nil, err
	}

	return &execution, nil
}

// Stop asks the platform to halt a running execution.
func (s *ExecutionsService) Stop(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/executions/%d/stop", id), nil, nil)

	return err
}

// Retry asks the platform to re-run a finished execution.
func (s *ExecutionsService) Retry(ctx context.Context, id int64) error {
	_, err := s.client.send(ctx, http.MethodPost, fmt.Sprintf("/executions/%d/retry", id), nil, nil)

	return err
}
