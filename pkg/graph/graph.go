// Package graph holds the in-memory node/edge graph behind the workflow
// editor.
//
// The editor binds this model to the canvas view; saving serializes the
// collections wholesale into the same create-or-update path the other
// resources use. There is no undo/redo, no autosave, and no validation of
// cycles or port compatibility: the remote API owns well-formedness.
package graph

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// Archetype is a node blueprint offered in the editor palette.
type Archetype struct {
	Label    string
	Category string
}

// Palette is the node catalog, grouped the way the palette displays it.
var Palette = []Archetype{
	{Label: "Webhook", Category: "trigger"},
	{Label: "Schedule", Category: "trigger"},
	{Label: "Email Trigger", Category: "trigger"},
	{Label: "Manual", Category: "trigger"},
	{Label: "HTTP Request", Category: "action"},
	{Label: "Email", Category: "action"},
	{Label: "Slack", Category: "action"},
	{Label: "Database", Category: "action"},
	{Label: "Code", Category: "transform"},
	{Label: "Filter", Category: "transform"},
	{Label: "Merge", Category: "transform"},
	{Label: "Split", Category: "transform"},
}

var (
	// ErrNodeNotFound is returned when an operation names a node absent
	// from the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSelfConnection is returned when an edge would loop a node onto
	// itself.
	ErrSelfConnection = errors.New("cannot connect a node to itself")
)

// Graph is the editable node/edge collection.
type Graph struct {
	nodes []models.Node
	edges []models.Connection

	selected string
	position func() (int, int)
}

// New creates an empty graph for a new workflow.
func New() *Graph {
	return &Graph{position: randomPosition}
}

// FromWorkflow initializes the graph from a workflow's persisted node and
// connection lists.
func FromWorkflow(workflow *models.Workflow) *Graph {
	g := New()

	g.nodes = append(g.nodes, workflow.Nodes...)
	g.edges = append(g.edges, workflow.Connections...)

	return g
}

// canvas placement range matches the editor's drop area.
func randomPosition() (int, int) {
	return rand.Intn(400) + 100, rand.Intn(400) + 100
}

// AddNode places a new node of the given archetype at a randomized canvas
// position and returns it.
func (g *Graph) AddNode(archetype Archetype) models.Node {
	x, y := g.position()

	node := models.Node{
		ID:        uuid.NewString(),
		Label:     archetype.Label,
		Archetype: archetype.Label,
		Category:  archetype.Category,
		PositionX: x,
		PositionY: y,
	}

	g.nodes = append(g.nodes, node)

	return node
}

// Connect draws an edge between two nodes. Beyond existence and the
// trivial self-loop, nothing is validated.
func (g *Graph) Connect(sourceID, targetID string) (models.Connection, error) {
	if sourceID == targetID {
		return models.Connection{}, ErrSelfConnection
	}

	if !g.has(sourceID) || !g.has(targetID) {
		return models.Connection{}, ErrNodeNotFound
	}

	edge := models.Connection{
		ID:     uuid.NewString(),
		Source: sourceID,
		Target: targetID,
	}

	g.edges = append(g.edges, edge)

	return edge, nil
}

// Select marks a node for the side panel. Selecting an unknown id clears
// the selection.
func (g *Graph) Select(id string) {
	if g.has(id) {
		g.selected = id

		return
	}

	g.selected = ""
}

// Selected returns the node under edit, if any.
func (g *Graph) Selected() (models.Node, bool) {
	for _, node := range g.nodes {
		if node.ID == g.selected {
			return node, true
		}
	}

	return models.Node{}, false
}

// Rename updates a node's label.
func (g *Graph) Rename(id, label string) error {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			g.nodes[i].Label = label

			return nil
		}
	}

	return ErrNodeNotFound
}

// RemoveNode deletes a node and cascades to every edge touching it.
func (g *Graph) RemoveNode(id string) error {
	if !g.has(id) {
		return ErrNodeNotFound
	}

	nodes := g.nodes[:0]

	for _, node := range g.nodes {
		if node.ID != id {
			nodes = append(nodes, node)
		}
	}

	g.nodes = nodes

	edges := g.edges[:0]

	for _, edge := range g.edges {
		if edge.Source != id && edge.Target != id {
			edges = append(edges, edge)
		}
	}

	g.edges = edges

	if g.selected == id {
		g.selected = ""
	}

	return nil
}

// Nodes returns a copy of the node list.
func (g *Graph) Nodes() []models.Node {
	out := make([]models.Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []models.Connection {
	out := make([]models.Connection, len(g.edges))
	copy(out, g.edges)

	return out
}

// Serialize returns the node and connection collections for the save
// payload.
func (g *Graph) Serialize() ([]models.Node, []models.Connection) {
	return g.Nodes(), g.Edges()
}

func (g *Graph) has(id string) bool {
	for _, node := range g.nodes {
		if node.ID == id {
			return true
		}
	}

	return false
}
