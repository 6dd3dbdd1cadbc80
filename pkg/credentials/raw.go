package credentials

import "encoding/json"

// RawEditor is the fallback editor state for unknown credential types. The
// text is reparsed on every edit; invalid JSON is silently ignored and the
// last successfully parsed value is retained for submission.
type RawEditor struct {
	text  string
	value map[string]any
}

// NewRawEditor seeds the editor with an existing payload, when any.
func NewRawEditor(initial map[string]any) *RawEditor {
	editor := &RawEditor{value: initial}

	if initial != nil {
		if data, err := json.MarshalIndent(initial, "", "  "); err == nil {
			editor.text = string(data)
		}
	}

	return editor
}

// SetText records an edit and reparses.
func (e *RawEditor) SetText(text string) {
	e.text = text

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return
	}

	e.value = parsed
}

// Text returns the current editor content, valid or not.
func (e *RawEditor) Text() string { return e.text }

// Value returns the last successfully parsed payload.
func (e *RawEditor) Value() map[string]any { return e.value }

// Valid reports whether the current text parses.
func (e *RawEditor) Valid() bool {
	var parsed map[string]any

	return json.Unmarshal([]byte(e.text), &parsed) == nil
}
