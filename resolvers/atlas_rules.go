package resolvers

import (
	"fmt"
	"strings"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/models"
)

// AdminTable is the rule table of the admin assistant. Order matters: a
// message mentioning both an account and billing resolves to the account rule.
func AdminTable() Table {
	return Table{
		Name: "admin",
		Rules: []Rule{
			{Name: "accounts", Keywords: []string{"account", "client", "customer"}, Build: adminAccounts},
			{Name: "invoicing", Keywords: []string{"invoice", "billing", "payment"}, Build: adminInvoicing},
			{Name: "analytics", Keywords: []string{"analytics", "performance", "metrics"}, Build: adminAnalytics},
			{Name: "users", Keywords: []string{"user", "team", "access"}, Build: adminUsers},
			{Name: "system", Keywords: []string{"system", "health", "status"}, Build: adminSystem},
			{Name: "financial", Keywords: []string{"revenue", "financial", "profit"}, Build: adminFinancial},
			{Name: "alerts", Keywords: []string{"alert", "notification", "urgent"}, Build: adminAlerts},
		},
		Default: adminDefault,
	}
}

func adminAccounts(m PlatformMetrics) models.ResolverResult {
	res := models.ResolverResult{
		Content: fmt.Sprintf("I can help you manage client accounts! I've identified %s with upcoming renewals and %s overdue. Here's what I can do:",
			plural(m.UpcomingRenewals, "account", "accounts"),
			plural(m.OverdueAccounts, "account that is", "accounts that are")),
		Suggestions: []string{
			"Show overdue accounts",
			"Upcoming renewals this month",
			"Account health scores",
			"Client usage analytics",
		},
	}
	if m.OverdueAccounts > 0 {
		res.ActionButtons = append(res.ActionButtons, models.ActionButton{Label: "Generate Overdue Report", Action: actions.GenerateOverdueReport, Variant: models.VariantWarning})
	}
	res.ActionButtons = append(res.ActionButtons, models.ActionButton{Label: "Send Renewal Reminders", Action: actions.SendRenewals, Variant: models.VariantPrimary})
	return res
}

func adminInvoicing(m PlatformMetrics) models.ResolverResult {
	res := models.ResolverResult{
		Content: fmt.Sprintf("I can handle all invoicing tasks! Currently, there are %s ready to be sent and %s requiring follow-up. "+
			"I can generate invoices, send payment reminders, and track payment status.",
			plural(m.InvoicesReady, "invoice", "invoices"),
			plural(m.OverduePayments, "overdue payment", "overdue payments")),
		Suggestions: []string{
			"Generate monthly invoices",
			"Send overdue payment notices",
			"Payment status report",
			"Revenue analytics",
		},
		ActionButtons: []models.ActionButton{
			{Label: "Generate All Invoices", Action: actions.GenerateInvoices, Variant: models.VariantPrimary},
		},
	}
	if m.OverduePayments > 0 {
		res.ActionButtons = append(res.ActionButtons, models.ActionButton{Label: "Send Payment Reminders", Action: actions.PaymentReminders, Variant: models.VariantWarning})
	}
	return res
}

func adminAnalytics(m PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: fmt.Sprintf("Here's your platform overview: %s active users, %s conversations this month (+%s), %s customer satisfaction. "+
			"Revenue is up %s from last month. I can provide detailed breakdowns by client, agent performance, or system metrics.",
			formatCount(m.ActiveUsers), formatCount(m.MonthlyConversations), formatPct(m.ConversationGrowthPct),
			formatPct(m.SatisfactionPct), formatPct(m.RevenueGrowthPct)),
		Suggestions: []string{
			"Client performance breakdown",
			"Revenue analytics",
			"System performance metrics",
			"User engagement stats",
		},
		ActionButtons: []models.ActionButton{
			{Label: "Generate Executive Report", Action: actions.ExecReport, Variant: models.VariantPrimary},
			{Label: "Export Analytics Data", Action: actions.ExportData, Variant: models.VariantSecondary},
		},
	}
}

func adminUsers(m PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: fmt.Sprintf("I can manage all user accounts and permissions. Currently monitoring %s active users across %s client organizations. "+
			"I can handle user provisioning, access control, and security audits.",
			formatCount(m.ActiveUsers), formatCount(m.ClientOrganizations)),
		Suggestions: []string{
			"Recent user activity",
			"Permission audit",
			"Inactive user cleanup",
			"Security alerts",
		},
		ActionButtons: []models.ActionButton{
			{Label: "User Security Audit", Action: actions.SecurityAudit, Variant: models.VariantWarning},
			{Label: "Bulk User Management", Action: actions.BulkUsers, Variant: models.VariantSecondary},
		},
	}
}

func adminSystem(m PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: fmt.Sprintf("System status: All services operational ✅ %s uptime this month, API response time averaging %dms. "+
			"I've detected no critical issues. Database performance is optimal, and all integrations are functioning normally.",
			formatPct(m.UptimePct), m.APIResponseMS),
		Suggestions: []string{
			"Detailed system metrics",
			"Integration status",
			"Performance optimization",
			"Backup status",
		},
		ActionButtons: []models.ActionButton{
			{Label: "Full System Report", Action: actions.SystemReport, Variant: models.VariantPrimary},
			{Label: "Schedule Maintenance", Action: actions.ScheduleMaintenance, Variant: models.VariantSecondary},
		},
	}
}

func adminFinancial(m PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: fmt.Sprintf("Financial overview: Monthly recurring revenue is $%s (+%s MoM), with %s payment collection rate. "+
			"I can generate financial reports, forecast revenue, and identify growth opportunities.",
			formatCount(m.MonthlyRecurringRevenue), formatPct(m.RevenueGrowthPct), formatPct(m.CollectionRatePct)),
		Suggestions: []string{
			"Monthly financial report",
			"Revenue forecasting",
			"Client profitability analysis",
			"Churn risk assessment",
		},
		ActionButtons: []models.ActionButton{
			{Label: "Generate Financial Report", Action: actions.FinancialReport, Variant: models.VariantPrimary},
			{Label: "Revenue Forecast", Action: actions.RevenueForecast, Variant: models.VariantSecondary},
		},
	}
}

func adminAlerts(m PlatformMetrics) models.ResolverResult {
	suggestions := []string{
		"View all alerts",
		"Auto-resolve low priority",
		"Escalation procedures",
		"Alert configuration",
	}
	if len(m.Alerts) == 0 {
		return models.ResolverResult{
			Content:     "Current alerts: no high-priority items need attention right now. I'll keep monitoring and let you know as soon as something comes up.",
			Suggestions: suggestions,
			ActionButtons: []models.ActionButton{
				{Label: "Configure Auto-Actions", Action: actions.AutoActions, Variant: models.VariantSecondary},
			},
		}
	}
	summaries := make([]string, len(m.Alerts))
	for i, a := range m.Alerts {
		summaries[i] = a.Summary
	}
	verb := "require"
	if len(m.Alerts) == 1 {
		verb = "requires"
	}
	return models.ResolverResult{
		Content: fmt.Sprintf("Current alerts: %s %s attention - %s. I can handle these automatically or escalate as needed.",
			plural(len(m.Alerts), "high-priority item", "high-priority items"), verb, joinAnd(summaries)),
		Suggestions: suggestions,
		ActionButtons: []models.ActionButton{
			{Label: "Handle Urgent Items", Action: actions.HandleUrgent, Variant: models.VariantWarning},
			{Label: "Configure Auto-Actions", Action: actions.AutoActions, Variant: models.VariantSecondary},
		},
	}
}

func adminDefault(PlatformMetrics) models.ResolverResult {
	return models.ResolverResult{
		Content: "I'm your comprehensive admin assistant! I can help with client management, invoicing, platform analytics, " +
			"user administration, system monitoring, and financial oversight. I proactively monitor for issues and can automate routine tasks. " +
			"What specific area would you like to focus on?",
		Suggestions: []string{
			"Today's priority tasks",
			"Client account overview",
			"Financial dashboard",
			"System health check",
			"User management",
		},
	}
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return "1 " + singular
	}
	return formatCount(n) + " " + many
}

// joinAnd joins items as "a and b" or "a, b, and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
