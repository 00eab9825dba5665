package models

import "time"

// Widget_Response is the snapshot of a widget returned by the API.
type Widget_Response struct {
	ID         string    `json:"id"`
	Agent      string    `json:"agent"`
	Audience   Audience  `json:"audience"`
	State      string    `json:"state"` // "closed", "idle", "awaiting_response"
	Input      string    `json:"input"`
	Transcript []Message `json:"transcript"`
}

// Submit_Response reports the outcome of a submit.
// Accepted is false when the submit was ignored (empty input, a response
// already pending, or a closed widget).
type Submit_Response struct {
	Accepted bool      `json:"accepted"`
	Messages []Message `json:"messages,omitempty"`
}

// Effect_Response describes a deferred effect the client must perform.
type Effect_Response struct {
	Kind    string `json:"kind"` // "navigate", "scroll", "follow_up"
	URL     string `json:"url,omitempty"`
	Anchor  string `json:"anchor,omitempty"`
	DelayMS int64  `json:"delay_ms"`
}

// Action_Response reports the outcome of an action click.
type Action_Response struct {
	Acknowledgment *Message         `json:"acknowledgment,omitempty"`
	Effect         *Effect_Response `json:"effect,omitempty"`
}

// ConversationInfo holds archived conversation metadata for listing.
type ConversationInfo struct {
	ConversationID string     `json:"conversation_id"`
	WidgetID       string     `json:"widget_id"`
	Audience       Audience   `json:"audience"`
	UserName       string     `json:"user_name,omitempty"`
	MessageCount   int        `json:"message_count"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// ActionInfo is one archived action click.
type ActionInfo struct {
	Action    string    `json:"action"`
	Effect    string    `json:"effect,omitempty"`
	ClickedAt time.Time `json:"clicked_at"`
}

// Conversation_Response is an archived conversation with its transcript.
type Conversation_Response struct {
	Conversation ConversationInfo `json:"conversation"`
	Messages     []Message        `json:"messages"`
	Actions      []ActionInfo     `json:"actions"`
}
