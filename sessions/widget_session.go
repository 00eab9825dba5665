package sessions

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/resolvers"
	"github.com/Desarso/tradesummit/stores"
)

const subscriberBuffer = 32

// WidgetSession is the server-side state of one chat widget: its shell
// state, draft input and transcript. All methods are safe for concurrent
// use; at most one resolver call is in flight per widget.
type WidgetSession struct {
	ID       string
	Audience models.Audience
	UserName string
	Agent    AgentInterface
	Archive  *Archiver
	Logger   *zap.Logger
	Schedule Scheduler
	OnAction ActionObserver
	Now      func() time.Time

	mu             sync.Mutex
	state          State
	input          string
	transcript     []models.Message
	generation     uint64
	conversationID string
	lastActive     time.Time

	subscribers map[int]chan Event
	nextSub     int
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// appendLocked adds one message to the transcript. Callers hold mu.
func (ws *WidgetSession) appendLocked(msgType models.MessageType, res models.ResolverResult) models.Message {
	msg := models.Message{
		ID:            newMessageID(),
		Sequence:      len(ws.transcript) + 1,
		Type:          msgType,
		Content:       res.Content,
		Timestamp:     ws.Now(),
		Suggestions:   res.Suggestions,
		ActionButtons: res.ActionButtons,
	}
	ws.transcript = append(ws.transcript, msg)
	ws.lastActive = msg.Timestamp

	convoID := ws.conversationID
	ws.Archive.Enqueue(func(s stores.MessageStore) error {
		return s.SaveMessage(convoID, msg)
	})
	return msg
}

func (ws *WidgetSession) touchLocked() {
	ws.lastActive = ws.Now()
}

// Open moves a closed widget to idle and seeds the introduction when the
// transcript is empty. It reports false when the widget was already open.
func (ws *WidgetSession) Open() bool {
	ws.mu.Lock()
	if ws.state != StateClosed {
		ws.mu.Unlock()
		return false
	}
	ws.state = StateIdle
	ws.conversationID = newMessageID()
	ws.touchLocked()

	convoID, widgetID, audience, userName := ws.conversationID, ws.ID, ws.Audience, ws.UserName
	ws.Archive.Enqueue(func(s stores.MessageStore) error {
		return s.CreateConversation(convoID, widgetID, audience, userName)
	})

	ws.publishLocked(Event{Type: EventState, State: StateIdle.String()})
	if len(ws.transcript) == 0 {
		intro := ws.appendLocked(models.MessageTypeAgent, ws.Agent.Introduction(ws.Audience, ws.UserName))
		ws.publishLocked(Event{Type: EventMessage, Message: &intro})
	}
	ws.mu.Unlock()

	ws.Logger.Info("widget opened", zap.String("conversation_id", convoID))
	return true
}

// Close discards the transcript, history and draft input. A response or
// deferred effect still pending for the closed period is dropped.
func (ws *WidgetSession) Close() bool {
	ws.mu.Lock()
	if ws.state == StateClosed {
		ws.mu.Unlock()
		return false
	}
	ws.state = StateClosed
	ws.transcript = nil
	ws.input = ""
	ws.generation++
	ws.touchLocked()

	convoID, closedAt := ws.conversationID, ws.lastActive
	ws.conversationID = ""
	ws.Archive.Enqueue(func(s stores.MessageStore) error {
		return s.CloseConversation(convoID, closedAt)
	})
	ws.publishLocked(Event{Type: EventState, State: StateClosed.String()})
	ws.mu.Unlock()

	ws.Logger.Info("widget closed", zap.String("conversation_id", convoID))
	return true
}

// SetInput replaces the draft input of an open widget.
func (ws *WidgetSession) SetInput(text string) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.state == StateClosed {
		return false
	}
	ws.input = text
	ws.touchLocked()
	return true
}

// ClickSuggestion copies a chip into the draft input. Nothing is appended
// to the transcript. Ignored while a response is pending.
func (ws *WidgetSession) ClickSuggestion(text string) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.state != StateIdle {
		return false
	}
	ws.input = text
	ws.touchLocked()
	return true
}

// Submit sends the draft input. See Send.
func (ws *WidgetSession) Submit(ctx context.Context) ([]models.Message, bool) {
	return ws.submit(ctx, nil)
}

// Send submits text in place of the draft input. It returns the appended
// messages and false when the submit was ignored: empty input, a response
// already pending, or a closed widget. An ignored Send leaves the draft as is.
func (ws *WidgetSession) Send(ctx context.Context, text string) ([]models.Message, bool) {
	return ws.submit(ctx, &text)
}

func historyOf(transcript []models.Message) []models.HistoryTurn {
	turns := make([]models.HistoryTurn, 0, len(transcript))
	for _, m := range transcript {
		role := models.RoleAssistant
		if m.Type == models.MessageTypeUser {
			role = models.RoleUser
		}
		turns = append(turns, models.HistoryTurn{Role: role, Content: m.Content})
	}
	return turns
}

func (ws *WidgetSession) submit(ctx context.Context, text *string) ([]models.Message, bool) {
	ws.mu.Lock()
	if ws.state != StateIdle {
		ws.mu.Unlock()
		return nil, false
	}
	draft := ws.input
	if text != nil {
		draft = *text
	}
	userText := strings.TrimSpace(draft)
	if userText == "" {
		ws.mu.Unlock()
		return nil, false
	}

	history := historyOf(ws.transcript)
	userMsg := ws.appendLocked(models.MessageTypeUser, models.ResolverResult{Content: userText})
	ws.input = ""
	ws.state = StateAwaiting
	gen := ws.generation
	audience := ws.Audience
	ws.publishLocked(Event{Type: EventMessage, Message: &userMsg})
	ws.publishLocked(Event{Type: EventState, State: StateAwaiting.String()})
	ws.mu.Unlock()

	// Detached from the caller; remote resolvers bound themselves.
	start := time.Now()
	res, err := ws.Agent.Resolve(context.WithoutCancel(ctx), userText, audience, history)
	if err != nil {
		ws.Logger.Warn("resolver failed, using fallback reply", zap.Error(err))
		res = resolvers.Fallback()
	}

	ws.mu.Lock()
	if ws.generation != gen {
		// Closed while awaiting.
		ws.mu.Unlock()
		ws.Logger.Info("dropping reply for closed widget", zap.Duration("elapsed", time.Since(start)))
		return []models.Message{userMsg}, true
	}
	agentMsg := ws.appendLocked(models.MessageTypeAgent, res)
	ws.state = StateIdle
	ws.publishLocked(Event{Type: EventMessage, Message: &agentMsg})
	ws.publishLocked(Event{Type: EventState, State: StateIdle.String()})
	ws.mu.Unlock()

	ws.Logger.Debug("reply appended",
		zap.Int("sequence", agentMsg.Sequence),
		zap.Duration("elapsed", time.Since(start)))
	return []models.Message{userMsg, agentMsg}, true
}

// ClickAction appends the acknowledgment right away and schedules the
// action's effect, if any. Ignored when the widget is closed.
func (ws *WidgetSession) ClickAction(action string) (models.Message, *actions.Effect, bool) {
	ws.mu.Lock()
	if ws.state == StateClosed {
		ws.mu.Unlock()
		return models.Message{}, nil, false
	}
	ackRes, effect := ws.Agent.Dispatch(action)
	ack := ws.appendLocked(models.MessageTypeAgent, ackRes)
	gen := ws.generation

	record := &stores.ActionRecord{ConversationID: ws.conversationID, Action: action, ClickedAt: ack.Timestamp}
	if effect != nil {
		record.Effect = string(effect.Kind)
	}
	ws.Archive.Enqueue(func(s stores.MessageStore) error {
		return s.SaveAction(record)
	})
	ws.publishLocked(Event{Type: EventMessage, Message: &ack})
	ws.mu.Unlock()

	ws.Logger.Info("action dispatched", zap.String("action", action), zap.String("effect", record.Effect))
	if ws.OnAction != nil {
		ws.OnAction(ws.Audience, action, record.Effect)
	}

	if effect != nil {
		e := *effect
		ws.Schedule(e.Delay, func() { ws.applyEffect(gen, e) })
	}
	return ack, effect, true
}

func (ws *WidgetSession) applyEffect(gen uint64, effect actions.Effect) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.generation != gen || ws.state == StateClosed {
		return
	}
	if effect.Kind == actions.EffectFollowUp && effect.FollowUp != nil {
		follow := ws.appendLocked(models.MessageTypeAgent, *effect.FollowUp)
		ws.publishLocked(Event{Type: EventMessage, Message: &follow})
		return
	}
	resp := effect.Response()
	ws.publishLocked(Event{Type: EventEffect, Effect: &resp})
}

// State returns the current shell state.
func (ws *WidgetSession) State() State {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state
}

// Transcript returns a copy of the transcript.
func (ws *WidgetSession) Transcript() []models.Message {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]models.Message(nil), ws.transcript...)
}

// ConversationID is the archive id of the current open period, empty when closed.
func (ws *WidgetSession) ConversationID() string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.conversationID
}

func (ws *WidgetSession) Snapshot() models.Widget_Response {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.snapshotLocked()
}

func (ws *WidgetSession) snapshotLocked() models.Widget_Response {
	return models.Widget_Response{
		ID:         ws.ID,
		Agent:      ws.Agent.Name(),
		Audience:   ws.Audience,
		State:      ws.state.String(),
		Input:      ws.input,
		Transcript: append([]models.Message{}, ws.transcript...),
	}
}

// IdleSince is the time of the last interaction.
func (ws *WidgetSession) IdleSince() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.lastActive
}

// Subscribe returns a channel of widget events and a function that ends
// the subscription. Slow subscribers miss events rather than block the widget.
func (ws *WidgetSession) Subscribe() (<-chan Event, func()) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.subscribeLocked()
}

// SnapshotAndSubscribe is Subscribe plus the state the first event follows.
// Every event on the channel happened after the snapshot.
func (ws *WidgetSession) SnapshotAndSubscribe() (models.Widget_Response, <-chan Event, func()) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	events, cancel := ws.subscribeLocked()
	return ws.snapshotLocked(), events, cancel
}

func (ws *WidgetSession) subscribeLocked() (<-chan Event, func()) {
	if ws.subscribers == nil {
		ws.subscribers = make(map[int]chan Event)
	}
	id := ws.nextSub
	ws.nextSub++
	ch := make(chan Event, subscriberBuffer)
	ws.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ws.mu.Lock()
			defer ws.mu.Unlock()
			if sub, ok := ws.subscribers[id]; ok {
				delete(ws.subscribers, id)
				close(sub)
			}
		})
	}
}

// publishLocked fans ev out to subscribers. Callers hold mu, so an event
// is never both in a snapshot and on a channel opened with it.
func (ws *WidgetSession) publishLocked(ev Event) {
	for _, ch := range ws.subscribers {
		select {
		case ch <- ev:
		default:
			ws.Logger.Warn("subscriber too slow, dropping event", zap.String("type", string(ev.Type)))
		}
	}
}

// closeSubscribers ends every subscription. Used when the widget is removed.
func (ws *WidgetSession) closeSubscribers() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for id, ch := range ws.subscribers {
		delete(ws.subscribers, id)
		close(ch)
	}
}
