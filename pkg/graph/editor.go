package graph

import (
	"context"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// Editor binds a graph to the workflow being edited. Save dispatches a
// create or an update depending on whether the workflow already has an
// identifier.
type Editor struct {
	*Graph

	WorkflowID  int64
	Name        string
	Description string
}

// NewEditor opens an editor for a new workflow.
func NewEditor() *Editor {
	return &Editor{Graph: New()}
}

// EditorFor opens an editor on an existing workflow.
func EditorFor(workflow *models.Workflow) *Editor {
	return &Editor{
		Graph:       FromWorkflow(workflow),
		WorkflowID:  workflow.ID,
		Name:        workflow.Name,
		Description: workflow.Description,
	}
}

// Request assembles the save payload from the current graph plus the name
// and description fields.
func (e *Editor) Request() api.WorkflowRequest {
	nodes, connections := e.Serialize()

	return api.WorkflowRequest{
		Name:        e.Name,
		Description: e.Description,
		Nodes:       nodes,
		Connections: connections,
	}
}

// Save persists the workflow. On success the editor adopts the returned
// identifier, so a subsequent save of a fresh workflow updates instead of
// creating a duplicate.
func (e *Editor) Save(ctx context.Context, workflows *api.WorkflowsService) (*models.Workflow, error) {
	req := e.Request()

	var (
		saved *models.Workflow
		err   error
	)

	if e.WorkflowID == 0 {
		saved, err = workflows.Create(ctx, req)
	} else {
		saved, err = workflows.Update(ctx, e.WorkflowID, req)
	}

	if err != nil {
		return nil, err
	}

	if saved != nil && saved.ID != 0 {
		e.WorkflowID = saved.ID
	}

	return saved, nil
}
