package client

import (
	"context"
	"net/http"
)

// ChatRole identifies who produced a transcript entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleError     ChatRole = "error"
)

// ChatEntry is one line of the transcript.
type ChatEntry struct {
	Role               ChatRole
	Content            string
	SuggestedQuestions []string
	Pending            bool
}

// ChatPanel holds the transcript of one project's agent conversation.
// Send is a plain request/response cycle: no retries, no streaming, no
// simulated progress.
type ChatPanel struct {
	api       *Client
	ProjectID string
	Entries   []ChatEntry
}

func NewChatPanel(api *Client, projectID string) *ChatPanel {
	return &ChatPanel{api: api, ProjectID: projectID}
}

// Send appends the user message and a pending entry, issues one blocking
// call, and replaces the pending entry with the reply. It reports whether
// the recommendation list should be refetched. A failed call leaves one
// inline error entry in the transcript.
func (p *ChatPanel) Send(ctx context.Context, text string) (bool, error) {
	p.Entries = append(p.Entries,
		ChatEntry{Role: RoleUser, Content: text},
		ChatEntry{Role: RoleAssistant, Pending: true},
	)
	pending := len(p.Entries) - 1

	var reply AgentReply
	err := p.api.mutate(ctx, http.MethodPost, "/api/project/"+p.ProjectID+"/chat", opChat,
		map[string]string{"prompt": text}, &reply)
	if err != nil {
		p.Entries[pending] = ChatEntry{
			Role:    RoleError,
			Content: "Something went wrong. Please try again.",
		}
		return false, err
	}

	p.Entries[pending] = ChatEntry{
		Role:               RoleAssistant,
		Content:            reply.Message,
		SuggestedQuestions: reply.SuggestedQuestions,
	}
	return reply.RefreshRecommendations, nil
}
