package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mubot/core"
)

func TestClient_GetJSON_Object(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"age": 42, "name": "michael"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	result, err := client.GetJSON(context.Background(), server.URL)

	require.NoError(t, err)
	obj, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), obj["age"])
	assert.Equal(t, "michael", obj["name"])
}

func TestClient_GetJSON_Array(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": {"common": "Germany"}}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	result, err := client.GetJSON(context.Background(), server.URL)

	require.NoError(t, err)
	list, ok := result.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestClient_GetJSON_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.Client())
	_, err := client.GetJSON(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func TestClient_GetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"broken":`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	_, err := client.GetJSON(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func TestClient_GetJSON_ConnectionRefused(t *testing.T) {
	client := NewClient(nil)
	_, err := client.GetJSON(context.Background(), "http://127.0.0.1:1/unreachable")

	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}
