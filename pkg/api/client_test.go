package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok-123"))

	_, _, err := client.Workflows().List(t.Context(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"fresh"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	result, err := client.Auth().Login(t.Context(), LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.Equal(t, "fresh", result.Token)
}

func TestClient_NoContentIsSyntheticSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	err := client.Workflows().Delete(t.Context(), 42)
	assert.NoError(t, err)
}

func TestClient_NonJSONResponseIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	_, _, err := client.Workflows().List(t.Context(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_ErrorEnvelopeMessageSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"message":"The name field is required."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	_, err := client.Workflows().Create(t.Context(), WorkflowRequest{Name: "abc"})
	require.Error(t, err)
	require.True(t, IsAPIError(err))
	assert.Equal(t, "The name field is required.", err.Error())
}

func TestClient_ErrorWithoutMessageUsesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	err := client.Workflows().Activate(t.Context(), 7)
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestClient_UnauthorizedClassifiedAsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Unauthenticated."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("stale"))

	_, err := client.Credentials().List(t.Context())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestClient_ProblemJSONDetailSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict","detail":"workflow is already active","status":409}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	err := client.Workflows().Activate(t.Context(), 9)
	require.Error(t, err)
	require.True(t, IsAPIError(err))
	assert.Equal(t, "workflow is already active", err.Error())
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	_, _, err := client.Executions().List(t.Context(), 1, 20)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsAPIError(err))
}

func TestClient_SuccessFalseOn2xxIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("tok"))

	err := client.Workflows().Execute(t.Context(), 3, nil)
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", err.Error())
}

func TestClient_ValidationRejectsBeforeNetworkCall(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Auth().Login(t.Context(), LoginRequest{Email: "not-an-email", Password: "pw"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, calls)
}
