package resolvers

import (
	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
)

// CustomerTable is the rule table of the customer success agent. The
// identity question is checked before any topic; billing and agent
// performance are only answered for existing customers.
func CustomerTable() Table {
	return Table{
		Name: "customer",
		Rules: []Rule{
			{Name: "identity", Keywords: []string{"aria", "who are you", "what are you"}, Build: ariaIdentity},
			{Name: "pricing", Keywords: []string{"price", "cost", "pricing"}, Build: ariaPricing},
			{Name: "demo", Keywords: []string{"demo", "trial", "see it"}, Build: ariaDemo},
			{Name: "security", Keywords: []string{"security", "compliance", "hipaa", "gdpr"}, Build: ariaSecurity},
			{Name: "integrations", Keywords: []string{"integration", "connect", "salesforce", "hubspot"}, Build: ariaIntegrations},
			{Name: "industry", Keywords: []string{"healthcare", "ecommerce", "real estate", "saas"}, Build: ariaIndustry},
			{Name: "billing", Keywords: []string{"billing", "invoice", "payment"}, Audiences: []models.Audience{models.AudienceCustomer}, Build: ariaBilling},
			{Name: "agents", Keywords: []string{"agent", "bot", "performance"}, Audiences: []models.Audience{models.AudienceCustomer}, Build: ariaAgents},
		},
		Default: ariaDefault,
		Refine:  RefineWithContext,
	}
}

func ariaIdentity(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "Yes, I'm Aria! 👋 I'm your AI Customer Success Agent here at TradeSummit, and I'm powered by Google Gemini AI. " +
			"I'm here to help you with anything related to our AI agent platform - whether you're exploring our solutions or already using them. " +
			"I love helping businesses discover how AI agents can transform their customer experience. What brings you here today?",
		Suggestions: []string{"Tell me about TradeSummit", "Show me pricing options", "I need a demo", "Help with my account"},
		ActionButtons: []models.ActionButton{
			{Label: "Get Started", Action: actions.GetStarted, Variant: models.VariantPrimary},
		},
	}
}

func ariaPricing(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "I'd love to help you understand our pricing! We have three plans designed for different business needs. " +
			"Our most popular is the Professional plan at $2,500/month (plus $5,000 setup) - it includes 10 AI agents, 25,000 conversations monthly, " +
			"all integrations, and HIPAA compliance. But let me ask - what size business are you, and what's your main goal with AI agents? " +
			"That'll help me recommend the best fit!",
		Suggestions: []string{"Small business (Starter plan)", "Growing business (Professional)", "Large enterprise", "Compare all plans"},
		ActionButtons: []models.ActionButton{
			{Label: "Schedule Demo", Action: actions.ScheduleDemo, Variant: models.VariantPrimary},
			{Label: "View Pricing Details", Action: actions.ViewPricing, Variant: models.VariantSecondary},
		},
	}
}

func ariaDemo(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "Absolutely! I'd love to show you TradeSummit in action. Our demos are really impressive - you'll see real AI agents handling customer conversations, " +
			"integrating with tools like Salesforce, and providing analytics. We can customize it for your industry too. " +
			"Would you prefer a quick 15-minute overview to see the highlights, or a 30-minute deep dive where we can discuss your specific use case?",
		Suggestions: []string{"15-minute overview", "30-minute deep dive", "Industry-specific demo", "Technical integration demo"},
		ActionButtons: []models.ActionButton{
			{Label: "Book Demo Now", Action: actions.BookDemo, Variant: models.VariantPrimary},
			{Label: "Watch Video Demo", Action: actions.DemoVideo, Variant: models.VariantSecondary},
		},
	}
}

func ariaSecurity(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "Security is absolutely foundational to everything we do! We're HIPAA compliant (perfect for healthcare), SOC 2 Type II ready, and GDPR compliant. " +
			"All data is encrypted end-to-end with AES-256, we use zero-trust architecture, and have 24/7 monitoring. " +
			"Many of our healthcare clients chose us specifically because we handle patient data securely. " +
			"What industry are you in? I can share the specific compliance features that matter most for your sector.",
		Suggestions: []string{"Healthcare compliance", "Financial services security", "GDPR requirements", "Download security guide"},
		ActionButtons: []models.ActionButton{
			{Label: "Security Whitepaper", Action: actions.SecurityGuide, Variant: models.VariantPrimary},
		},
	}
}

func ariaIntegrations(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "Great question! We integrate with 50+ popular tools and the setup is surprisingly easy - usually takes about 5 minutes with our integration wizard. " +
			"We connect with Salesforce, HubSpot, Shopify, Zendesk, Slack, Microsoft Teams, and tons more. Plus, for enterprise clients, we can build custom integrations. " +
			"What tools is your team currently using? I can show you exactly how they'd work together with your AI agents.",
		Suggestions: []string{"Salesforce integration", "HubSpot setup", "E-commerce platforms", "Custom integrations"},
		ActionButtons: []models.ActionButton{
			{Label: "See All Integrations", Action: actions.ViewIntegrations, Variant: models.VariantPrimary},
		},
	}
}

func ariaIndustry(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "Perfect! We have specialized AI agents built specifically for different industries. Each comes with pre-built templates, " +
			"industry-specific features, and relevant integrations. For example, our healthcare agents are HIPAA-compliant and integrate with Epic MyChart, " +
			"while our e-commerce agents connect with Shopify and handle order tracking automatically. " +
			"What industry are you in? I can show you exactly how other companies like yours are using TradeSummit.",
		Suggestions: []string{"Healthcare solutions", "E-commerce agents", "Real estate tools", "SaaS support"},
		ActionButtons: []models.ActionButton{
			{Label: "Industry Solutions", Action: actions.IndustrySolutions, Variant: models.VariantPrimary},
		},
	}
}

func ariaBilling(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "I'm here to help with your billing questions! I can check your current plan details, payment status, and usage metrics. " +
			"If you need to make changes to your subscription or have payment issues, I can also connect you directly with our billing team. " +
			"What specifically would you like to know about your account?",
		Suggestions: []string{"Check payment status", "View usage metrics", "Upgrade my plan", "Billing support contact"},
		ActionButtons: []models.ActionButton{
			{Label: "View Billing Dashboard", Action: actions.BillingDashboard, Variant: models.VariantPrimary},
		},
	}
}

func ariaAgents(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "I'd love to help you optimize your AI agents! I can review their performance metrics, suggest improvements for better customer satisfaction, " +
			"or help you create new agents. Our analytics show conversation success rates, response times, and customer feedback. " +
			"Which agent would you like to work on, or are you looking to create a new one?",
		Suggestions: []string{"Check agent performance", "Create new agent", "Improve responses", "View analytics"},
		ActionButtons: []models.ActionButton{
			{Label: "Agent Dashboard", Action: actions.AgentDashboard, Variant: models.VariantPrimary},
		},
	}
}

func ariaDefault(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "I'm here to help you discover how TradeSummit can transform your customer experience with AI agents that actually work! " +
			"Whether you're exploring our platform for the first time or looking to optimize your existing setup, I can guide you through everything. " +
			"What's your biggest challenge with customer support or sales right now?",
		Suggestions: []string{"Learn about TradeSummit", "See pricing options", "Schedule a demo", "Industry solutions"},
		ActionButtons: []models.ActionButton{
			{Label: "Get Started", Action: actions.GetStarted, Variant: models.VariantPrimary},
		},
	}
}
