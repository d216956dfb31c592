package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendReplacesPendingEntry(t *testing.T) {
	_, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/project/p1/chat", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "something outdoors", body["prompt"])
		writeEnvelope(w, http.StatusOK, map[string]any{
			"message":                "Here are a few ideas.",
			"suggestedQuestions":     []string{"What's your budget?"},
			"refreshRecommendations": true,
		})
	})

	panel := NewChatPanel(api, "p1")
	refresh, err := panel.Send(context.Background(), "something outdoors")
	require.NoError(t, err)
	assert.True(t, refresh)

	require.Len(t, panel.Entries, 2)
	assert.Equal(t, RoleUser, panel.Entries[0].Role)
	assert.Equal(t, "something outdoors", panel.Entries[0].Content)
	assert.Equal(t, RoleAssistant, panel.Entries[1].Role)
	assert.False(t, panel.Entries[1].Pending)
	assert.Equal(t, "Here are a few ideas.", panel.Entries[1].Content)
	assert.Equal(t, []string{"What's your budget?"}, panel.Entries[1].SuggestedQuestions)
}

func TestChatSendFailureLeavesInlineError(t *testing.T) {
	_, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil)
	})

	panel := NewChatPanel(api, "missing")
	refresh, err := panel.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.False(t, refresh)

	require.Len(t, panel.Entries, 2)
	assert.Equal(t, RoleError, panel.Entries[1].Role)
	assert.Equal(t, "Something went wrong. Please try again.", panel.Entries[1].Content)
	assert.False(t, panel.Entries[1].Pending)
}

func TestChatTranscriptAccumulates(t *testing.T) {
	_, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"message": "ok"})
	})

	panel := NewChatPanel(api, "p1")
	_, err := panel.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = panel.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, panel.Entries, 4)
	assert.Equal(t, "first", panel.Entries[0].Content)
	assert.Equal(t, "second", panel.Entries[2].Content)
}
