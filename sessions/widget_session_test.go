package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/resolvers"
)

type fakeAgent struct {
	mu        sync.Mutex
	reply     models.ResolverResult
	err       error
	release   chan struct{}
	histories [][]models.HistoryTurn
	ctxErrs   []error
	dispatch  *actions.Dispatcher
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		reply:    models.ResolverResult{Content: "Here's what I found", Suggestions: []string{"More"}},
		dispatch: actions.NewCustomerDispatcher(0),
	}
}

func (a *fakeAgent) Name() string { return "Fake" }

func (a *fakeAgent) Introduction(audience models.Audience, userName string) models.ResolverResult {
	return models.ResolverResult{Content: "Hi " + userName + ", I'm here for " + string(audience)}
}

func (a *fakeAgent) Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
	a.mu.Lock()
	a.histories = append(a.histories, history)
	a.ctxErrs = append(a.ctxErrs, ctx.Err())
	release := a.release
	a.mu.Unlock()
	if release != nil {
		<-release
	}
	return a.reply, a.err
}

func (a *fakeAgent) Dispatch(action string) (models.ResolverResult, *actions.Effect) {
	return a.dispatch.Dispatch(action)
}

func immediate(_ time.Duration, f func()) { f() }

type deferredScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (d *deferredScheduler) schedule(_ time.Duration, f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, f)
}

func (d *deferredScheduler) runAll() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

func newTestWidget(agent AgentInterface) *WidgetSession {
	ws := NewWidgetSession("w1", models.AudienceProspect, "Dana", agent, nil, nil)
	ws.Schedule = immediate
	return ws
}

func waitForState(t *testing.T, ws *WidgetSession, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ws.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected state %s, got %s", want, ws.State())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOpenSeedsIntroOnce(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	if ws.State() != StateClosed {
		t.Fatalf("expected new widget to be closed, got %s", ws.State())
	}
	if !ws.Open() {
		t.Fatalf("expected Open to succeed")
	}
	transcript := ws.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("expected 1 intro message, got %d", len(transcript))
	}
	if transcript[0].Type != models.MessageTypeAgent || transcript[0].Content != "Hi Dana, I'm here for prospect" {
		t.Errorf("expected agent intro, got %+v", transcript[0])
	}
	if ws.Open() {
		t.Errorf("expected second Open to be a no-op")
	}
	if len(ws.Transcript()) != 1 {
		t.Errorf("expected intro to be seeded once")
	}
}

func TestSubmitAppendsTwoMessages(t *testing.T) {
	agent := newFakeAgent()
	ws := newTestWidget(agent)
	ws.Open()

	ws.SetInput("  what's the pricing?  ")
	msgs, ok := ws.Submit(context.Background())
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 appended messages, got %d (accepted=%v)", len(msgs), ok)
	}
	if msgs[0].Type != models.MessageTypeUser || msgs[0].Content != "what's the pricing?" {
		t.Errorf("expected trimmed user message, got %+v", msgs[0])
	}
	if msgs[1].Type != models.MessageTypeAgent || msgs[1].Content != "Here's what I found" {
		t.Errorf("expected agent reply, got %+v", msgs[1])
	}
	if msgs[1].Sequence != 3 {
		t.Errorf("expected sequence 3, got %d", msgs[1].Sequence)
	}
	if ws.State() != StateIdle {
		t.Errorf("expected idle after reply, got %s", ws.State())
	}
	if snap := ws.Snapshot(); snap.Input != "" {
		t.Errorf("expected input cleared, got %q", snap.Input)
	}

	ws.Send(context.Background(), "second")
	if len(ws.Transcript()) != 5 {
		t.Errorf("expected 5 messages, got %d", len(ws.Transcript()))
	}
	history := agent.histories[1]
	if len(history) != 3 || history[1].Role != models.RoleUser || history[2].Role != models.RoleAssistant {
		t.Errorf("expected prior turns without the current message, got %+v", history)
	}
}

func TestSubmitIgnored(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	if _, ok := ws.Send(context.Background(), "hello"); ok {
		t.Errorf("expected submit on a closed widget to be ignored")
	}
	ws.Open()
	if _, ok := ws.Send(context.Background(), "   "); ok {
		t.Errorf("expected whitespace submit to be ignored")
	}
	if _, ok := ws.Submit(context.Background()); ok {
		t.Errorf("expected empty submit to be ignored")
	}
	if len(ws.Transcript()) != 1 {
		t.Errorf("expected only the intro, got %d messages", len(ws.Transcript()))
	}
}

func TestSubmitWhileAwaiting(t *testing.T) {
	agent := newFakeAgent()
	agent.release = make(chan struct{})
	ws := newTestWidget(agent)
	ws.Open()

	done := make(chan []models.Message)
	go func() {
		msgs, _ := ws.Send(context.Background(), "first")
		done <- msgs
	}()
	waitForState(t, ws, StateAwaiting)

	if _, ok := ws.Send(context.Background(), "second"); ok {
		t.Errorf("expected submit while awaiting to be ignored")
	}
	if ws.ClickSuggestion("Pricing info") {
		t.Errorf("expected chip click while awaiting to be ignored")
	}
	if !ws.SetInput("draft") {
		t.Errorf("expected typing to be allowed while awaiting")
	}

	close(agent.release)
	if msgs := <-done; len(msgs) != 2 {
		t.Errorf("expected first submit to complete with 2 messages, got %d", len(msgs))
	}
	if len(ws.Transcript()) != 3 {
		t.Errorf("expected 3 messages, got %d", len(ws.Transcript()))
	}
}

func TestSendWhitespaceKeepsDraft(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	ws.Open()
	ws.SetInput("my draft")

	if _, ok := ws.Send(context.Background(), "   "); ok {
		t.Fatalf("expected whitespace send to be ignored")
	}
	if got := ws.Snapshot().Input; got != "my draft" {
		t.Errorf("expected draft %q kept, got %q", "my draft", got)
	}
}

func TestCancelledCallerStillGetsReply(t *testing.T) {
	agent := newFakeAgent()
	ws := newTestWidget(agent)
	ws.Open()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msgs, ok := ws.Send(ctx, "hello")
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "Here's what I found" {
		t.Errorf("expected the agent reply, got %q", msgs[1].Content)
	}
	if err := agent.ctxErrs[0]; err != nil {
		t.Errorf("expected the resolver context to outlive the caller, got %v", err)
	}
}

func TestResolverErrorUsesFallback(t *testing.T) {
	agent := newFakeAgent()
	agent.err = errors.New("boom")
	ws := newTestWidget(agent)
	ws.Open()

	msgs, ok := ws.Send(context.Background(), "hello")
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Content != resolvers.Fallback().Content {
		t.Errorf("expected fallback reply, got %q", msgs[1].Content)
	}
}

func TestClickSuggestionSetsInput(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	if ws.ClickSuggestion("Pricing info") {
		t.Errorf("expected chip click on a closed widget to be ignored")
	}
	ws.Open()
	if !ws.ClickSuggestion("Pricing info") {
		t.Fatalf("expected chip click to be accepted")
	}
	if snap := ws.Snapshot(); snap.Input != "Pricing info" {
		t.Errorf("expected input %q, got %q", "Pricing info", snap.Input)
	}
	if len(ws.Transcript()) != 1 {
		t.Errorf("expected no message appended by a chip click")
	}
}

func TestCloseResetsTranscript(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	ws.Open()
	ws.Send(context.Background(), "hello")
	ws.SetInput("unsent")

	if !ws.Close() {
		t.Fatalf("expected Close to succeed")
	}
	if len(ws.Transcript()) != 0 {
		t.Errorf("expected transcript discarded, got %d messages", len(ws.Transcript()))
	}
	if ws.SetInput("x") {
		t.Errorf("expected SetInput on a closed widget to fail")
	}
	ws.Open()
	transcript := ws.Transcript()
	if len(transcript) != 1 || transcript[0].Sequence != 1 {
		t.Errorf("expected a fresh intro after reopening, got %+v", transcript)
	}
	if ws.Snapshot().Input != "" {
		t.Errorf("expected input discarded on close")
	}
}

func TestCloseDropsLateReply(t *testing.T) {
	agent := newFakeAgent()
	agent.release = make(chan struct{})
	ws := newTestWidget(agent)
	ws.Open()

	done := make(chan []models.Message)
	go func() {
		msgs, _ := ws.Send(context.Background(), "hello")
		done <- msgs
	}()
	waitForState(t, ws, StateAwaiting)
	ws.Close()
	ws.Open()
	close(agent.release)

	if msgs := <-done; len(msgs) != 1 {
		t.Errorf("expected only the user message back, got %d", len(msgs))
	}
	transcript := ws.Transcript()
	if len(transcript) != 1 {
		t.Errorf("expected only the new intro, got %d messages", len(transcript))
	}
	if ws.State() != StateIdle {
		t.Errorf("expected idle, got %s", ws.State())
	}
}

func TestClickActionFollowUp(t *testing.T) {
	var observed []string
	ws := newTestWidget(newFakeAgent())
	ws.OnAction = func(_ models.Audience, action, effect string) {
		observed = append(observed, action+":"+effect)
	}
	ws.Open()

	ack, effect, ok := ws.ClickAction(actions.GetStarted)
	if !ok {
		t.Fatalf("expected action to be accepted")
	}
	if effect == nil || effect.Kind != actions.EffectFollowUp {
		t.Fatalf("expected follow-up effect, got %+v", effect)
	}
	transcript := ws.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected intro, acknowledgment and follow-up, got %d", len(transcript))
	}
	if transcript[1].ID != ack.ID {
		t.Errorf("expected acknowledgment before the follow-up")
	}
	if len(transcript[2].Suggestions) != 4 {
		t.Errorf("expected follow-up suggestions, got %v", transcript[2].Suggestions)
	}
	if len(observed) != 1 || observed[0] != "get_started:follow_up" {
		t.Errorf("expected observer call, got %v", observed)
	}
}

func TestClickActionUnknown(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	if _, _, ok := ws.ClickAction(actions.ViewPricing); ok {
		t.Errorf("expected action on a closed widget to be ignored")
	}
	ws.Open()
	ack, effect, ok := ws.ClickAction("mystery_button")
	if !ok || effect != nil {
		t.Errorf("expected acknowledgment only, got effect %+v", effect)
	}
	if ack.Type != models.MessageTypeAgent || len(ws.Transcript()) != 2 {
		t.Errorf("expected one acknowledgment appended")
	}
}

func TestCloseDropsPendingEffect(t *testing.T) {
	sched := &deferredScheduler{}
	ws := newTestWidget(newFakeAgent())
	ws.Schedule = sched.schedule
	ws.Open()

	ws.ClickAction(actions.GetStarted)
	ws.Close()
	ws.Open()
	sched.runAll()

	if len(ws.Transcript()) != 1 {
		t.Errorf("expected the follow-up to be dropped after close, got %d messages", len(ws.Transcript()))
	}
}

func TestSubscribeEvents(t *testing.T) {
	sched := &deferredScheduler{}
	ws := newTestWidget(newFakeAgent())
	ws.Schedule = sched.schedule
	ws.Open()

	events, cancel := ws.Subscribe()
	defer cancel()

	ws.Send(context.Background(), "hello")
	want := []EventType{EventMessage, EventState, EventMessage, EventState}
	for i, typ := range want {
		ev := <-events
		if ev.Type != typ {
			t.Errorf("event %d: expected %s, got %s", i, typ, ev.Type)
		}
	}

	ws.ClickAction(actions.ViewPricing)
	if ev := <-events; ev.Type != EventMessage {
		t.Errorf("expected acknowledgment event, got %s", ev.Type)
	}
	sched.runAll()
	ev := <-events
	if ev.Type != EventEffect || ev.Effect == nil || ev.Effect.Anchor != actions.AnchorPricing {
		t.Errorf("expected scroll effect event, got %+v", ev)
	}

	cancel()
	if _, open := <-events; open {
		t.Errorf("expected channel closed after cancel")
	}
}

func TestSnapshotAndSubscribeNoReplay(t *testing.T) {
	ws := newTestWidget(newFakeAgent())
	ws.Open()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 10 {
			ws.Send(context.Background(), fmt.Sprintf("question %d", i))
		}
	}()

	for range 50 {
		snap, events, cancel := ws.SnapshotAndSubscribe()
		last := 0
		if n := len(snap.Transcript); n > 0 {
			last = snap.Transcript[n-1].Sequence
		}
	drain:
		for {
			select {
			case ev := <-events:
				if ev.Message != nil && ev.Message.Sequence <= last {
					t.Errorf("expected events after sequence %d, got replayed %d", last, ev.Message.Sequence)
				}
			default:
				break drain
			}
		}
		cancel()
	}
	<-done

	snap, events, cancel := ws.SnapshotAndSubscribe()
	defer cancel()
	if len(snap.Transcript) != 21 {
		t.Fatalf("expected 21 messages in snapshot, got %d", len(snap.Transcript))
	}
	ws.Send(context.Background(), "one more")
	ev := <-events
	if ev.Type != EventMessage || ev.Message == nil || ev.Message.Sequence != 22 {
		t.Errorf("expected user message 22 as first event, got %+v", ev)
	}
}
