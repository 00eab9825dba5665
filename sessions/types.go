package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
)

var (
	ErrWidgetNotFound  = errors.New("widget not found")
	ErrInvalidAudience = errors.New("invalid audience")
)

// AgentInterface is what a widget needs from an agent. The root package
// implements it so sessions does not import it back.
type AgentInterface interface {
	Name() string
	Introduction(audience models.Audience, userName string) models.ResolverResult
	Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error)
	Dispatch(action string) (models.ResolverResult, *actions.Effect)
}

// State is the widget shell state.
type State int

const (
	StateClosed State = iota
	StateIdle
	StateAwaiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting_response"
	default:
		return "closed"
	}
}

// EventType names what an Event carries.
type EventType string

const (
	EventMessage EventType = "message"
	EventEffect  EventType = "effect"
	EventState   EventType = "state"
)

// Event is pushed to subscribers whenever the widget changes.
type Event struct {
	Type    EventType               `json:"type"`
	Message *models.Message         `json:"message,omitempty"`
	Effect  *models.Effect_Response `json:"effect,omitempty"`
	State   string                  `json:"state,omitempty"`
}

// Scheduler runs f once after d. Tests substitute an immediate scheduler.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ActionObserver is told about every dispatched action. effect is empty
// when the action had no deferred effect.
type ActionObserver func(audience models.Audience, action, effect string)
