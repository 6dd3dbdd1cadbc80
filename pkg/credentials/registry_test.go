package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltinTypes(t *testing.T) {
	registry := NewRegistry()

	expected := []string{"http_basic", "http_bearer", "oauth2", "api_key", "database", "smtp", "aws"}
	assert.Equal(t, expected, registry.Tags())

	spec, ok := registry.Lookup("smtp")
	require.True(t, ok)
	assert.Equal(t, "SMTP", spec.Label)
	assert.Len(t, spec.Fields, 4)
}

func TestRegistry_UnknownTagFallsThrough(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Lookup("homegrown")
	assert.False(t, ok)
	assert.Nil(t, registry.BuildPayload("homegrown", map[string]string{"x": "y"}))
}

func TestRegistry_RegisterIsAdditive(t *testing.T) {
	registry := NewRegistry()

	registry.Register(TypeSpec{
		Tag:   "ssh_key",
		Label: "SSH Key",
		Fields: []FieldSpec{
			{Name: "private_key", Label: "Private Key", Kind: KindSecret, Required: true},
		},
	})

	spec, ok := registry.Lookup("ssh_key")
	require.True(t, ok)
	assert.True(t, spec.Fields[0].Secret())
	assert.Contains(t, registry.Tags(), "ssh_key")
}

func TestBuildPayload_OnlyActiveTypeFields(t *testing.T) {
	registry := NewRegistry()

	// Values entered while "api_key" was selected, then the type was
	// switched to "oauth2": the api_key value must not leak into the
	// submitted payload.
	values := map[string]string{
		"api_key":       "sk-live-123",
		"client_id":     "cid",
		"client_secret": "shh",
	}

	payload := registry.BuildPayload("oauth2", values)

	assert.Equal(t, map[string]any{"client_id": "cid", "client_secret": "shh"}, payload)
	assert.NotContains(t, payload, "api_key")
}

func TestBuildPayload_OmitsEmptyFields(t *testing.T) {
	registry := NewRegistry()

	payload := registry.BuildPayload("http_basic", map[string]string{"username": "root"})

	assert.Equal(t, map[string]any{"username": "root"}, payload)
}

func TestMissingRequired(t *testing.T) {
	registry := NewRegistry()

	missing := registry.MissingRequired("database", map[string]string{"host": "db.internal"})
	assert.Equal(t, []string{"database", "password", "username"}, missing)

	missing = registry.MissingRequired("http_bearer", map[string]string{"token": "t"})
	assert.Empty(t, missing)
}

func TestSchema_ValidatesPayload(t *testing.T) {
	registry := NewRegistry()

	payload := registry.BuildPayload("aws", map[string]string{
		"access_key_id":     "AKIA",
		"secret_access_key": "shh",
		"region":            "eu-west-1",
	})
	assert.NoError(t, registry.ValidatePayload("aws", payload))

	err := registry.ValidatePayload("aws", map[string]any{"access_key_id": "AKIA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aws")
}

func TestSchema_RejectsUnknownProperties(t *testing.T) {
	registry := NewRegistry()

	err := registry.ValidatePayload("http_bearer", map[string]any{
		"token": "t",
		"extra": "nope",
	})
	assert.Error(t, err)
}

func TestSchema_UnknownTagValidatesTrivially(t *testing.T) {
	registry := NewRegistry()

	assert.NoError(t, registry.ValidatePayload("homegrown", map[string]any{"anything": 1}))
}

func TestRawEditor_KeepsLastGoodParse(t *testing.T) {
	editor := NewRawEditor(nil)

	editor.SetText(`{"token": "abc"}`)
	require.True(t, editor.Valid())
	assert.Equal(t, map[string]any{"token": "abc"}, editor.Value())

	// Mid-edit garbage: ignored, last parsed value retained.
	editor.SetText(`{"token": "abc`)
	assert.False(t, editor.Valid())
	assert.Equal(t, map[string]any{"token": "abc"}, editor.Value())

	editor.SetText(`{"token": "xyz"}`)
	assert.Equal(t, map[string]any{"token": "xyz"}, editor.Value())
}

func TestRawEditor_SeededFromExistingPayload(t *testing.T) {
	editor := NewRawEditor(map[string]any{"cert": "pem"})

	assert.Contains(t, editor.Text(), "cert")
	assert.Equal(t, map[string]any{"cert": "pem"}, editor.Value())
}
