package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_Validation_ValidWorkflow(t *testing.T) {
	workflow := &Workflow{
		ID:   1,
		Name: "daily report",
		Nodes: []Node{
			{ID: "n1", Label: "Webhook", Category: "trigger"},
		},
	}

	validate := validator.New()
	err := validate.Struct(workflow)
	assert.NoError(t, err)
}

func TestWorkflow_Validation_NameTooShort(t *testing.T) {
	workflow := &Workflow{ID: 1, Name: "ab"}

	validate := validator.New()
	err := validate.Struct(workflow)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	assert.Equal(t, "min", validationErrors[0].Tag())
}

func TestConnection_Validation_RequiresEndpoints(t *testing.T) {
	connection := &Connection{ID: "c1"}

	validate := validator.New()
	err := validate.Struct(connection)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	assert.Len(t, validationErrors, 2)
}

func TestWebhook_Validation_RejectsUnknownMethod(t *testing.T) {
	webhook := &Webhook{ID: 1, WorkflowID: 2, Path: "/hooks/orders", Method: "TRACE"}

	validate := validator.New()
	err := validate.Struct(webhook)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	assert.Equal(t, "oneof", validationErrors[0].Tag())
}

func TestExecution_JSONRoundtrip(t *testing.T) {
	data := []byte(`{
		"id": 9,
		"workflow_id": 3,
		"workflow": "daily report",
		"status": "running",
		"mode": "manual",
		"execution_time_ms": 1250
	}`)

	var execution Execution
	require.NoError(t, json.Unmarshal(data, &execution))

	assert.Equal(t, int64(9), execution.ID)
	assert.Equal(t, ExecutionStatusRunning, execution.Status)
	assert.Equal(t, "daily report", execution.WorkflowName)
	assert.Nil(t, execution.StartedAt)
}

func TestWorkflow_JSONDropsUnknownFields(t *testing.T) {
	data := []byte(`{"id": 4, "name": "sync", "unknown_field": {"nested": true}}`)

	var workflow Workflow
	require.NoError(t, json.Unmarshal(data, &workflow))

	assert.Equal(t, int64(4), workflow.ID)
	assert.Equal(t, "sync", workflow.Name)
}

func TestVariable_ScopeIsOptional(t *testing.T) {
	data := []byte(`{"id": 1, "key": "API_HOST", "value": "example.test"}`)

	var variable Variable
	require.NoError(t, json.Unmarshal(data, &variable))
	assert.Nil(t, variable.WorkflowID)

	scoped := []byte(`{"id": 2, "key": "TOKEN", "value": "x", "workflow_id": 7}`)

	require.NoError(t, json.Unmarshal(scoped, &variable))
	require.NotNil(t, variable.WorkflowID)
	assert.Equal(t, int64(7), *variable.WorkflowID)
}
