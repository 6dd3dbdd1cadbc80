// Package models defines the client-side records for the platform entities.
//
// Every entity is owned by the remote API; these types carry only what the
// console needs for rendering and editing. Unknown fields coming back from
// the API are dropped on decode, never validated.
package models

import "time"

// ExecutionStatus is the run state reported by the platform.
type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusRunning ExecutionStatus = "running"
	ExecutionStatusError   ExecutionStatus = "error"
	ExecutionStatusStopped ExecutionStatus = "stopped"
)

// Workflow is a named automation definition composed of nodes and
// connections. The graph itself is edited locally and persisted wholesale
// through create/update calls.
type Workflow struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"        validate:"required,min=3"`
	Description    string       `json:"description"`
	IsActive       bool         `json:"is_active"`
	Nodes          []Node       `json:"nodes"`
	Connections    []Connection `json:"connections"`
	ExecutionCount int          `json:"execution_count"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Node is a single step placed on the editor canvas.
type Node struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"    validate:"required,min=1"`
	Archetype string         `json:"archetype"`
	Category  string         `json:"category"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
	Config    map[string]any `json:"config,omitempty"`
}

// Connection is a directed edge between two nodes.
type Connection struct {
	ID     string `json:"id"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Execution is a recorded run of a workflow. Read-only from the console;
// stop and retry are remote actions, not local state transitions.
type Execution struct {
	ID              int64           `json:"id"`
	WorkflowID      int64           `json:"workflow_id"`
	WorkflowName    string          `json:"workflow,omitempty"`
	Status          ExecutionStatus `json:"status"`
	Mode            string          `json:"mode"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	ExecutionTimeMS int64           `json:"execution_time_ms,omitempty"`
}

// Credential is a named, typed secret bundle. Data is shaped by the type
// tag; see the credentials package for the field registry.
type Credential struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name" validate:"required"`
	Type      string         `json:"type" validate:"required"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Template is a reusable workflow blueprint offered by the platform.
type Template struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Nodes       int    `json:"nodes"`
	UsageCount  int    `json:"usage_count"`
}

// Webhook is an inbound trigger endpoint bound to a workflow.
type Webhook struct {
	ID           int64  `json:"id"`
	WorkflowID   int64  `json:"workflow_id"`
	Path         string `json:"path"   validate:"required"`
	Method       string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	URL          string `json:"url,omitempty"`
	TriggerCount int    `json:"trigger_count"`
}

// Variable is a key/value setting, either global or scoped to a workflow.
type Variable struct {
	ID         int64  `json:"id"`
	Key        string `json:"key" validate:"required"`
	Value      string `json:"value"`
	Type       string `json:"type"`
	WorkflowID *int64 `json:"workflow_id,omitempty"`
}

// WorkflowVersion is a saved revision of a workflow graph.
type WorkflowVersion struct {
	ID         int64     `json:"id"`
	WorkflowID int64     `json:"workflow_id"`
	Version    int       `json:"version"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is the authenticated account blob returned by login.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Organization is the tenant blob returned by login, when present.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AnalyticsSummary is the dashboard rollup served by the analytics
// endpoints.
type AnalyticsSummary struct {
	TotalWorkflows   int     `json:"total_workflows"`
	ActiveWorkflows  int     `json:"active_workflows"`
	TotalExecutions  int     `json:"total_executions"`
	SuccessRate      float64 `json:"success_rate"`
	ExecutionsToday  int     `json:"executions_today"`
	FailedExecutions int     `json:"failed_executions"`
}

// NotificationSettings mirrors the per-account notification switches.
type NotificationSettings struct {
	EmailOnFailure  bool `json:"email_on_failure"`
	EmailOnSuccess  bool `json:"email_on_success"`
	WeeklySummary   bool `json:"weekly_summary"`
	ProductUpdates  bool `json:"product_updates"`
	SecurityAlerts  bool `json:"security_alerts"`
	WorkflowSharing bool `json:"workflow_sharing"`
}
