package actions

import (
	"strings"
	"testing"
	"time"
)

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"view_pricing":            "view pricing",
		"generate_overdue_report": "generate overdue report",
		"plain":                   "plain",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestCustomerDispatchEffects(t *testing.T) {
	d := NewCustomerDispatcher(DefaultDelay)

	ack, effect := d.Dispatch(ViewPricing)
	if !strings.Contains(ack.Content, `"view pricing"`) {
		t.Errorf("expected acknowledgment to restate the action, got %q", ack.Content)
	}
	if effect == nil || effect.Kind != EffectScroll || effect.Anchor != AnchorPricing {
		t.Fatalf("expected scroll to pricing, got %+v", effect)
	}
	if effect.Delay != time.Second {
		t.Errorf("expected 1s delay, got %v", effect.Delay)
	}

	_, effect = d.Dispatch(BookDemo)
	if effect == nil || effect.Kind != EffectNavigate || effect.URL != DemoBookingURL {
		t.Errorf("expected navigation to the booking page, got %+v", effect)
	}

	_, effect = d.Dispatch(GetStarted)
	if effect == nil || effect.Kind != EffectFollowUp || effect.FollowUp == nil {
		t.Fatalf("expected follow-up effect, got %+v", effect)
	}
	if len(effect.FollowUp.Suggestions) != 4 {
		t.Errorf("expected 4 follow-up suggestions, got %d", len(effect.FollowUp.Suggestions))
	}

	resp := effect.Response()
	if resp.Kind != "follow_up" || resp.DelayMS != 1000 {
		t.Errorf("expected follow_up with 1000ms, got %+v", resp)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	for _, d := range []*Dispatcher{NewCustomerDispatcher(0), NewAdminDispatcher(0)} {
		ack, effect := d.Dispatch("launch_rockets_now")
		if effect != nil {
			t.Errorf("%s: expected no effect for an unknown action", d.Name)
		}
		if !strings.Contains(ack.Content, "launch rockets now") {
			t.Errorf("%s: expected humanized acknowledgment, got %q", d.Name, ack.Content)
		}
		if d.Known("launch_rockets_now") {
			t.Errorf("%s: expected unknown action not to be in the vocabulary", d.Name)
		}
	}
}

func TestAdminDispatchAcknowledgesOnly(t *testing.T) {
	d := NewAdminDispatcher(DefaultDelay)
	for _, action := range d.Vocabulary() {
		ack, effect := d.Dispatch(action)
		if effect != nil {
			t.Errorf("expected no effect for %s", action)
		}
		if !strings.HasPrefix(ack.Content, "✅ Action executed: "+Humanize(action)) {
			t.Errorf("expected admin acknowledgment for %s, got %q", action, ack.Content)
		}
	}
}

func TestHandleOutsideVocabularyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Handle to panic for an unknown identifier")
		}
	}()
	NewAdminDispatcher(0).Handle("not_an_action", Route{Kind: EffectScroll, Anchor: "x"})
}

func TestVocabularyIsSortedCopy(t *testing.T) {
	d := NewCustomerDispatcher(0)
	vocab := d.Vocabulary()
	for i := 1; i < len(vocab); i++ {
		if vocab[i-1] > vocab[i] {
			t.Fatalf("expected sorted vocabulary, got %v", vocab)
		}
	}
	vocab[0] = "mutated"
	if d.Known("mutated") {
		t.Errorf("expected Vocabulary to return a copy")
	}
}
