package resolvers

import (
	"strings"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
)

var (
	customerDefaultSuggestions = []string{"Agent optimization", "View analytics", "Billing questions", "Technical support"}
	prospectDefaultSuggestions = []string{"Platform overview", "Schedule demo", "Pricing info", "Industry solutions"}
)

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// contextSuggestions picks quick replies from the user's text and the reply
// already produced. ok is false when only the audience default applied.
func contextSuggestions(userText string, audience models.Audience, content string) (chips []string, ok bool) {
	msg := strings.ToLower(userText)
	reply := strings.ToLower(content)

	if audience == models.AudienceCustomer {
		switch {
		case strings.Contains(msg, "billing") || strings.Contains(reply, "billing"):
			return []string{"Check payment status", "View usage metrics", "Upgrade plan", "Contact billing"}, true
		case containsAny(msg, "agent", "performance"):
			return []string{"Agent performance", "Create new agent", "Training tips", "Analytics dashboard"}, true
		}
		return append([]string(nil), customerDefaultSuggestions...), false
	}

	switch {
	case strings.Contains(msg, "price") || strings.Contains(reply, "pricing"):
		return []string{"Schedule demo", "Compare plans", "ROI calculator", "Enterprise pricing"}, true
	case strings.Contains(msg, "demo") || strings.Contains(reply, "demo"):
		return []string{"15-min overview", "30-min deep dive", "Industry demo", "Technical demo"}, true
	case strings.Contains(msg, "security") || strings.Contains(reply, "compliance"):
		return []string{"HIPAA details", "SOC 2 info", "Security whitepaper", "Compliance guide"}, true
	}
	return append([]string(nil), prospectDefaultSuggestions...), false
}

func contextActionButtons(userText string, audience models.Audience) (buttons []models.ActionButton, ok bool) {
	msg := strings.ToLower(userText)

	switch {
	case containsAny(msg, "demo", "see it", "show me"):
		return []models.ActionButton{
			{Label: "Schedule Demo", Action: actions.ScheduleDemo, Variant: models.VariantPrimary},
			{Label: "Watch Video", Action: actions.DemoVideo, Variant: models.VariantSecondary},
		}, true
	case containsAny(msg, "price", "pricing", "cost"):
		return []models.ActionButton{
			{Label: "View Pricing", Action: actions.ViewPricing, Variant: models.VariantPrimary},
			{Label: "Schedule Demo", Action: actions.ScheduleDemo, Variant: models.VariantSecondary},
		}, true
	case containsAny(msg, "integration", "connect"):
		return []models.ActionButton{
			{Label: "See Integrations", Action: actions.ViewIntegrations, Variant: models.VariantPrimary},
		}, true
	case audience == models.AudienceCustomer && containsAny(msg, "agent", "performance"):
		return []models.ActionButton{
			{Label: "Agent Dashboard", Action: actions.AgentDashboard, Variant: models.VariantPrimary},
		}, true
	}
	return []models.ActionButton{
		{Label: "Get Started", Action: actions.GetStarted, Variant: models.VariantPrimary},
	}, false
}

// ContextSuggestions returns the quick replies for a free-form reply,
// falling back to the audience defaults.
func ContextSuggestions(userText string, audience models.Audience, content string) []string {
	chips, _ := contextSuggestions(userText, audience, content)
	return chips
}

// ContextActionButtons returns the buttons for a free-form reply.
func ContextActionButtons(userText string, audience models.Audience) []models.ActionButton {
	buttons, _ := contextActionButtons(userText, audience)
	return buttons
}

// RefineWithContext replaces a rule's quick replies and buttons when the
// user's text or the reply names a more specific topic. Rule defaults are
// kept otherwise.
func RefineWithContext(userText string, audience models.Audience, res models.ResolverResult) models.ResolverResult {
	if chips, ok := contextSuggestions(userText, audience, res.Content); ok {
		res.Suggestions = chips
	}
	if buttons, ok := contextActionButtons(userText, audience); ok {
		res.ActionButtons = buttons
	}
	return res
}
