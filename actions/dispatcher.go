package actions

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Desarso/tradesummit/models"
)

// DefaultDelay separates an acknowledgment from the effect it announces.
const DefaultDelay = time.Second

// EffectKind names what the client (or the session) does after the delay.
type EffectKind string

const (
	EffectNavigate EffectKind = "navigate"
	EffectScroll   EffectKind = "scroll"
	EffectFollowUp EffectKind = "follow_up"
)

// Effect is the deferred side effect of an action click.
type Effect struct {
	Kind     EffectKind
	URL      string
	Anchor   string
	FollowUp *models.ResolverResult
	Delay    time.Duration
}

// Response converts the effect to its wire form.
func (e Effect) Response() models.Effect_Response {
	return models.Effect_Response{
		Kind:    string(e.Kind),
		URL:     e.URL,
		Anchor:  e.Anchor,
		DelayMS: e.Delay.Milliseconds(),
	}
}

// Route describes the effect bound to one identifier.
type Route struct {
	Kind     EffectKind
	URL      string
	Anchor   string
	FollowUp func() models.ResolverResult
}

// Dispatcher maps action identifiers to acknowledgments and effects.
type Dispatcher struct {
	Name        string
	Delay       time.Duration
	Acknowledge func(action string) string

	routes     map[string]Route
	vocabulary []string
}

// NewDispatcher creates a dispatcher for a closed vocabulary.
func NewDispatcher(name string, delay time.Duration, vocabulary []string, acknowledge func(string) string) *Dispatcher {
	vocab := slices.Clone(vocabulary)
	slices.Sort(vocab)
	return &Dispatcher{
		Name:        name,
		Delay:       delay,
		Acknowledge: acknowledge,
		routes:      make(map[string]Route),
		vocabulary:  vocab,
	}
}

// Handle binds a route to an identifier of the vocabulary.
func (d *Dispatcher) Handle(action string, route Route) *Dispatcher {
	if !d.Known(action) {
		panic(fmt.Sprintf("actions: %q is not in the %s vocabulary", action, d.Name))
	}
	d.routes[action] = route
	return d
}

// Known reports whether action belongs to the dispatcher vocabulary.
func (d *Dispatcher) Known(action string) bool {
	_, ok := slices.BinarySearch(d.vocabulary, action)
	return ok
}

// Vocabulary returns the sorted identifiers this dispatcher understands.
func (d *Dispatcher) Vocabulary() []string {
	return slices.Clone(d.vocabulary)
}

// Dispatch always returns an acknowledgment. The effect is nil for
// identifiers without a route, including unrecognized ones.
func (d *Dispatcher) Dispatch(action string) (models.ResolverResult, *Effect) {
	ack := models.ResolverResult{Content: d.Acknowledge(Humanize(action))}

	route, ok := d.routes[action]
	if !ok {
		return ack, nil
	}
	effect := &Effect{
		Kind:   route.Kind,
		URL:    route.URL,
		Anchor: route.Anchor,
		Delay:  d.Delay,
	}
	if route.FollowUp != nil {
		follow := route.FollowUp()
		effect.FollowUp = &follow
	}
	return ack, effect
}

// Humanize restates an identifier for display: "view_pricing" -> "view pricing".
func Humanize(action string) string {
	return strings.ReplaceAll(action, "_", " ")
}

// NewCustomerDispatcher serves the customer/prospect widget.
func NewCustomerDispatcher(delay time.Duration) *Dispatcher {
	d := NewDispatcher("customer", delay, customerVocabulary, func(action string) string {
		return fmt.Sprintf("✅ Great choice! I'm taking care of %q for you right now. Let me get that set up...", action)
	})
	d.Handle(ScheduleDemo, Route{Kind: EffectNavigate, URL: DemoBookingURL}).
		Handle(BookDemo, Route{Kind: EffectNavigate, URL: DemoBookingURL}).
		Handle(ViewPricing, Route{Kind: EffectScroll, Anchor: AnchorPricing}).
		Handle(ViewIntegrations, Route{Kind: EffectScroll, Anchor: AnchorIntegrations}).
		Handle(IndustrySolutions, Route{Kind: EffectScroll, Anchor: AnchorIndustries}).
		Handle(GetStarted, Route{Kind: EffectFollowUp, FollowUp: getStartedFollowUp})
	return d
}

// NewAdminDispatcher serves the admin widget. Admin actions are
// acknowledged only.
func NewAdminDispatcher(delay time.Duration) *Dispatcher {
	return NewDispatcher("admin", delay, adminVocabulary, func(action string) string {
		return fmt.Sprintf("✅ Action executed: %s. Task completed successfully. "+
			"Results have been processed and relevant stakeholders have been notified.", action)
	})
}

func getStartedFollowUp() models.ResolverResult {
	return models.ResolverResult{
		Content: "Perfect! Let's get you started. I'd recommend beginning with a quick demo to see our AI agents in action. " +
			"Would you like me to schedule that for you, or do you have specific questions about how TradeSummit works?",
		Suggestions: []string{"Schedule demo now", "Ask about pricing", "See industry solutions", "Technical questions"},
		ActionButtons: []models.ActionButton{
			{Label: "Book Demo", Action: ScheduleDemo, Variant: models.VariantPrimary},
		},
	}
}
