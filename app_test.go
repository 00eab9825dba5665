package tradesummit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/models/openrouter"
	"github.com/Desarso/tradesummit/resolvers"
)

func newTestApp(t *testing.T, cfg *Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg.WithoutStore().WithDelays(0, 0), nil)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestAppRoutesAudiences(t *testing.T) {
	app := newTestApp(t, NewConfig())

	cases := map[models.Audience]string{
		models.AudienceCustomer: AriaName,
		models.AudienceProspect: AriaName,
		models.AudienceAdmin:    AtlasName,
	}
	for audience, want := range cases {
		ws, err := app.Manager.Create(audience, "")
		if err != nil {
			t.Fatalf("create %s: %v", audience, err)
		}
		if got := ws.Agent.Name(); got != want {
			t.Errorf("%s: expected %s, got %s", audience, want, got)
		}
	}
}

func TestProspectAsksForPricing(t *testing.T) {
	app := newTestApp(t, NewConfig())
	ws, _ := app.Manager.Create(models.AudienceProspect, "")

	msgs, ok := ws.Send(context.Background(), "what's the pricing?")
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	reply := msgs[1]
	if !strings.Contains(reply.Content, "Professional plan") {
		t.Errorf("expected pricing reply, got %q", reply.Content)
	}
	found := false
	for _, b := range reply.ActionButtons {
		if b.Action == actions.ViewPricing || b.Action == actions.ScheduleDemo {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a pricing or demo button, got %v", reply.ActionButtons)
	}
	if got := testutil.ToFloat64(app.Metrics.ResolverOutcomes.WithLabelValues("local", resolvers.OutcomeOK)); got != 1 {
		t.Errorf("expected 1 local resolution, got %v", got)
	}
}

func TestAdminAsksForOverdueInvoices(t *testing.T) {
	app := newTestApp(t, NewConfig())
	ws, _ := app.Manager.Create(models.AudienceAdmin, "Morgan")

	if intro := ws.Transcript()[0].Content; !strings.HasPrefix(intro, "Welcome back, Morgan!") {
		t.Errorf("expected personalized admin intro, got %q", intro)
	}
	msgs, _ := ws.Send(context.Background(), "show me overdue invoices")
	reply := msgs[1]
	if !strings.Contains(reply.Content, "5 overdue payments") {
		t.Errorf("expected overdue count, got %q", reply.Content)
	}
	warning := false
	for _, b := range reply.ActionButtons {
		if b.Action == actions.PaymentReminders && b.Variant == models.VariantWarning {
			warning = true
		}
	}
	if !warning {
		t.Errorf("expected a warning payment reminder button, got %v", reply.ActionButtons)
	}
}

func TestAdminReplySurvivesCancelledRequest(t *testing.T) {
	app, err := NewApp(context.Background(), NewConfig().WithoutStore().WithDelays(0, 50*time.Millisecond), nil)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(app.Close)
	ws, _ := app.Manager.Create(models.AudienceAdmin, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	msgs, ok := ws.Send(ctx, "show me overdue invoices")
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if !strings.Contains(msgs[1].Content, "5 overdue payments") {
		t.Errorf("expected the invoicing reply, got %q", msgs[1].Content)
	}
	if strings.Contains(msgs[1].Content, resolvers.Fallback().Content) {
		t.Errorf("expected no fallback reply for a local resolver")
	}
}

func TestAppPlatformMetricsOverride(t *testing.T) {
	m := resolvers.DefaultPlatformMetrics()
	m.ActiveUsers = 1234
	app := newTestApp(t, NewConfig().WithPlatformMetrics(m))
	ws, _ := app.Manager.Create(models.AudienceAdmin, "")

	msgs, _ := ws.Send(context.Background(), "user access review")
	if !strings.Contains(msgs[1].Content, "1,234 active users") {
		t.Errorf("expected overridden figures, got %q", msgs[1].Content)
	}
}

func TestActionsAreCounted(t *testing.T) {
	app := newTestApp(t, NewConfig())
	ws, _ := app.Manager.Create(models.AudienceCustomer, "")

	ws.ClickAction(actions.BillingDashboard)
	if got := testutil.ToFloat64(app.Metrics.Actions.WithLabelValues("customer", actions.BillingDashboard, "none")); got != 1 {
		t.Errorf("expected 1 counted action, got %v", got)
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(context.Background(), RemoteSettings{Provider: ProviderGemini})
	if err != nil || gen != nil {
		t.Errorf("expected no generator without a key, got %v, %v", gen, err)
	}
	gen, err = NewGenerator(context.Background(), RemoteSettings{Provider: ProviderLocal, APIKey: "k"})
	if err != nil || gen != nil {
		t.Errorf("expected no generator for the local provider, got %v, %v", gen, err)
	}
	gen, err = NewGenerator(context.Background(), RemoteSettings{Provider: ProviderOpenRouter, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*openrouter.OpenRouter_Model); !ok {
		t.Errorf("expected an OpenRouter model, got %T", gen)
	}
}

func TestIntroductions(t *testing.T) {
	customer := ariaIntroduction(models.AudienceCustomer, "")
	if !strings.HasPrefix(customer.Content, "Hello there!") {
		t.Errorf("expected generic customer greeting, got %q", customer.Content)
	}
	prospect := ariaIntroduction(models.AudienceProspect, "Dana")
	if !strings.HasPrefix(prospect.Content, "Welcome to TradeSummit!") {
		t.Errorf("expected prospect greeting, got %q", prospect.Content)
	}
	for _, intro := range []models.ResolverResult{customer, prospect, atlasIntroduction(models.AudienceAdmin, "")} {
		if len(intro.Suggestions) != 5 {
			t.Errorf("expected 5 intro suggestions, got %d", len(intro.Suggestions))
		}
	}
}
