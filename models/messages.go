package models

import "time"

// Audience classifies who a widget is talking to. It selects the persona,
// rule table and privilege level used for a conversation.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceProspect Audience = "prospect"
	AudienceAdmin    Audience = "admin"
)

// Valid reports whether a is one of the known audience classifications.
func (a Audience) Valid() bool {
	switch a {
	case AudienceCustomer, AudienceProspect, AudienceAdmin:
		return true
	}
	return false
}

// MessageType is the author of a transcript entry.
type MessageType string

const (
	MessageTypeUser  MessageType = "user"
	MessageTypeAgent MessageType = "agent"
)

// Variant controls how an action button is rendered.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantWarning   Variant = "warning"
)

// ActionButton is a clickable affordance attached to an agent message.
// Action is an identifier from the dispatcher vocabulary.
type ActionButton struct {
	Label   string  `json:"label"`
	Action  string  `json:"action"`
	Variant Variant `json:"variant"`
}

// Message is one transcript entry.
type Message struct {
	ID            string         `json:"id"`       // Time-ordered identifier
	Sequence      int            `json:"sequence"` // Position in the transcript, starting at 1
	Type          MessageType    `json:"type"`     // "user", "agent"
	Content       string         `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	ActionButtons []ActionButton `json:"action_buttons,omitempty"`
}

// ResolverResult is what a resolver produces for one user message.
// It is consumed immediately to build an agent Message.
type ResolverResult struct {
	Content       string         `json:"content"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	ActionButtons []ActionButton `json:"action_buttons,omitempty"`
}

// Role is the speaker of a history turn sent to a remote resolver.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// HistoryTurn is the reduced form of a Message used as prompt context.
type HistoryTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
