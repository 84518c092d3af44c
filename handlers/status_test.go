package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mubot/models"
	"mubot/services/router"
)

func TestHandleHealth(t *testing.T) {
	handler := NewStatusHandler("-p ")

	recorder := httptest.NewRecorder()
	handler.HandleHealth(recorder, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestHandleCommands(t *testing.T) {
	mockRouter := &router.MockRouterService{}
	mockRouter.On("Commands").Return([]*models.CommandSpec{
		{Name: "hello", Aliases: []string{"hi"}, Brief: "Greets you back"},
		{Name: "roll", Brief: "Rolls dice", Usage: "<rolls> <sides>"},
	})
	handler := NewStatusHandler("-p ", mockRouter)

	recorder := httptest.NewRecorder()
	handler.HandleCommands(recorder, httptest.NewRequest("GET", "/commands", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Commands []commandCatalogEntry `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Commands, 2)
	assert.Equal(t, "hello", body.Commands[0].Name)
	assert.Equal(t, []string{"hi"}, body.Commands[0].Aliases)
	assert.Equal(t, "-p hello", body.Commands[0].Usage)
	assert.Equal(t, "-p roll <rolls> <sides>", body.Commands[1].Usage)
}

func TestHandleCommands_NoRouters(t *testing.T) {
	handler := NewStatusHandler("-p ")

	recorder := httptest.NewRecorder()
	handler.HandleCommands(recorder, httptest.NewRequest("GET", "/commands", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"commands":[]}`, recorder.Body.String())
}
