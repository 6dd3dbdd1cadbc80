package graph

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpRequestArchetype() Archetype {
	return Archetype{Label: "HTTP Request", Category: "action"}
}

func TestAddNode_DistinctIdentifiersAndPositions(t *testing.T) {
	g := New()

	positions := [][2]int{{100, 100}, {250, 300}}
	g.position = func() (int, int) {
		p := positions[0]
		positions = positions[1:]

		return p[0], p[1]
	}

	first := g.AddNode(httpRequestArchetype())
	second := g.AddNode(httpRequestArchetype())

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "HTTP Request", first.Label)
	assert.Equal(t, "HTTP Request", second.Label)
	assert.NotEqual(t,
		[2]int{first.PositionX, first.PositionY},
		[2]int{second.PositionX, second.PositionY},
	)
	assert.Len(t, g.Nodes(), 2)
}

func TestAddNode_RandomPositionWithinCanvas(t *testing.T) {
	g := New()

	for range 50 {
		node := g.AddNode(httpRequestArchetype())
		assert.GreaterOrEqual(t, node.PositionX, 100)
		assert.Less(t, node.PositionX, 500)
		assert.GreaterOrEqual(t, node.PositionY, 100)
		assert.Less(t, node.PositionY, 500)
	}
}

func TestConnect(t *testing.T) {
	g := New()

	a := g.AddNode(Archetype{Label: "Webhook", Category: "trigger"})
	b := g.AddNode(httpRequestArchetype())

	edge, err := g.Connect(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, edge.Source)
	assert.Equal(t, b.ID, edge.Target)

	_, err = g.Connect(a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfConnection)

	_, err = g.Connect(a.ID, "missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestRemoveNode_CascadesOnlyTouchingEdges(t *testing.T) {
	g := New()

	a := g.AddNode(Archetype{Label: "Webhook", Category: "trigger"})
	b := g.AddNode(httpRequestArchetype())
	c := g.AddNode(Archetype{Label: "Email", Category: "action"})

	_, err := g.Connect(a.ID, b.ID)
	require.NoError(t, err)
	keep, err := g.Connect(a.ID, c.ID)
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(b.ID))

	assert.Len(t, g.Nodes(), 2)

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, keep.ID, edges[0].ID)

	assert.ErrorIs(t, g.RemoveNode(b.ID), ErrNodeNotFound)
}

func TestSelectAndRename(t *testing.T) {
	g := New()

	node := g.AddNode(httpRequestArchetype())

	g.Select(node.ID)
	selected, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, node.ID, selected.ID)

	require.NoError(t, g.Rename(node.ID, "Fetch Invoices"))
	selected, _ = g.Selected()
	assert.Equal(t, "Fetch Invoices", selected.Label)

	require.NoError(t, g.RemoveNode(node.ID))
	_, ok = g.Selected()
	assert.False(t, ok)

	assert.ErrorIs(t, g.Rename("missing", "x"), ErrNodeNotFound)
}

func TestFromWorkflow(t *testing.T) {
	workflow := &models.Workflow{
		ID:   12,
		Name: "Existing",
		Nodes: []models.Node{
			{ID: "n1", Label: "Webhook Trigger"},
			{ID: "n2", Label: "HTTP Request"},
		},
		Connections: []models.Connection{
			{ID: "e1", Source: "n1", Target: "n2"},
		},
	}

	g := FromWorkflow(workflow)

	assert.Len(t, g.Nodes(), 2)
	assert.Len(t, g.Edges(), 1)
}

func TestEditor_SaveCreatesThenUpdates(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":31,"name":"Invoices"}}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil)

	editor := NewEditor()
	editor.Name = "Invoices"
	editor.Description = "nightly sync"
	editor.AddNode(httpRequestArchetype())

	saved, err := editor.Save(t.Context(), client.Workflows())
	require.NoError(t, err)
	assert.EqualValues(t, 31, saved.ID)
	assert.EqualValues(t, 31, editor.WorkflowID)

	_, err = editor.Save(t.Context(), client.Workflows())
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "POST /workflows", paths[0])
	assert.Equal(t, "PUT /workflows/31", paths[1])
}

func TestEditor_RequestCarriesGraphAndFields(t *testing.T) {
	editor := NewEditor()
	editor.Name = "Orders"

	a := editor.AddNode(Archetype{Label: "Webhook", Category: "trigger"})
	b := editor.AddNode(httpRequestArchetype())
	_, err := editor.Connect(a.ID, b.ID)
	require.NoError(t, err)

	req := editor.Request()
	assert.Equal(t, "Orders", req.Name)
	assert.Len(t, req.Nodes, 2)
	assert.Len(t, req.Connections, 1)
}
