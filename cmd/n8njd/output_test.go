package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(nil))

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2025-03-14 09:26:53", formatTime(&ts))
}

func TestFormatActive(t *testing.T) {
	assert.Equal(t, "active", formatActive(true))
	assert.Equal(t, "inactive", formatActive(false))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250))
	assert.Equal(t, "1.5s", formatDuration(1500))
}

func TestWorkflowRows(t *testing.T) {
	rows := workflowRows([]models.Workflow{
		{
			ID:             7,
			Name:           "sync contacts",
			IsActive:       true,
			Nodes:          []models.Node{{ID: "a"}, {ID: "b"}},
			ExecutionCount: 12,
			UpdatedAt:      time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		},
	})

	assert.Equal(t, [][]string{{"7", "sync contacts", "active", "2", "12", "2025-01-02 03:04"}}, rows)
}

func TestExecutionRowsHandlesMissingStart(t *testing.T) {
	rows := executionRows([]models.Execution{
		{ID: 1, WorkflowName: "sync", Status: models.ExecutionStatusRunning, Mode: "manual"},
	})

	assert.Equal(t, "-", rows[0][4])
	assert.Equal(t, "running", rows[0][2])
}
