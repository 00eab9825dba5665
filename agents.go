package tradesummit

import (
	"context"
	"time"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/resolvers"
	"github.com/Desarso/tradesummit/sessions"
)

const (
	AriaName  = "Aria"
	AtlasName = "Atlas"
)

// IntroFunc builds the first message of a freshly opened widget.
type IntroFunc func(audience models.Audience, userName string) models.ResolverResult

// Agent is a persona: an introduction, a resolver and a dispatcher.
type Agent struct {
	AgentName  string
	Intro      IntroFunc
	Resolver   resolvers.Resolver
	Dispatcher *actions.Dispatcher
}

var _ sessions.AgentInterface = (*Agent)(nil)

func Create_Agent(name string, intro IntroFunc, resolver resolvers.Resolver, dispatcher *actions.Dispatcher) *Agent {
	return &Agent{
		AgentName:  name,
		Intro:      intro,
		Resolver:   resolver,
		Dispatcher: dispatcher,
	}
}

func (a *Agent) Name() string {
	return a.AgentName
}

func (a *Agent) Introduction(audience models.Audience, userName string) models.ResolverResult {
	return a.Intro(audience, userName)
}

func (a *Agent) Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
	return a.Resolver.Resolve(ctx, userText, audience, history)
}

func (a *Agent) Dispatch(action string) (models.ResolverResult, *actions.Effect) {
	return a.Dispatcher.Dispatch(action)
}

// NewAria builds the customer and prospect agent.
func NewAria(resolver resolvers.Resolver, actionDelay time.Duration) *Agent {
	return Create_Agent(AriaName, ariaIntroduction, resolver, actions.NewCustomerDispatcher(actionDelay))
}

// NewAtlas builds the admin agent.
func NewAtlas(resolver resolvers.Resolver, actionDelay time.Duration) *Agent {
	return Create_Agent(AtlasName, atlasIntroduction, resolver, actions.NewAdminDispatcher(actionDelay))
}

func ariaIntroduction(audience models.Audience, userName string) models.ResolverResult {
	if audience == models.AudienceCustomer {
		if userName == "" {
			userName = "there"
		}
		return models.ResolverResult{
			Content: "Hello " + userName + "! 👋 I'm Aria, your dedicated Customer Success Agent at TradeSummit. " +
				"I'm powered by Google Gemini AI and I'm here to help you optimize your AI agents, answer questions about your account, " +
				"and ensure you're getting maximum value from our platform. How can I help you today?",
			Suggestions: []string{
				"Check my AI agent performance",
				"Help with billing questions",
				"Technical support needed",
				"Want to create new agents",
				"Integration assistance",
			},
		}
	}
	return models.ResolverResult{
		Content: "Welcome to TradeSummit! 🌟 I'm Aria, your AI Customer Success Agent powered by Google Gemini. " +
			"I'm genuinely excited to help you discover how our AI agents can transform your business! " +
			"Whether you're curious about pricing, want to see a demo, or have specific questions about our platform, I'm here to help. " +
			"What would you like to explore first?",
		Suggestions: []string{
			"Tell me about TradeSummit",
			"Show me pricing options",
			"I want to see a demo",
			"Industry-specific solutions",
			"Security and compliance",
		},
	}
}

func atlasIntroduction(_ models.Audience, userName string) models.ResolverResult {
	if userName == "" {
		userName = "Admin"
	}
	return models.ResolverResult{
		Content: "Welcome back, " + userName + "! 👑 I'm Atlas, your Super Admin Assistant at TradeSummit. " +
			"I'm here to help you manage the entire platform, handle administrative tasks, monitor client accounts, generate invoices, " +
			"and ensure smooth operations. I can also alert you about account statuses and help with strategic decisions. " +
			"What would you like to work on today?",
		Suggestions: []string{
			"Check client account statuses",
			"Generate invoices",
			"Platform analytics overview",
			"Manage user accounts",
			"System health check",
		},
	}
}
