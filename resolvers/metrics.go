package resolvers

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Alert is a high-priority item surfaced to admins.
type Alert struct {
	Summary string `json:"summary" yaml:"summary"`
}

// PlatformMetrics is the snapshot of figures quoted by the admin rules.
type PlatformMetrics struct {
	UpcomingRenewals int `json:"upcoming_renewals" yaml:"upcoming_renewals"`
	OverdueAccounts  int `json:"overdue_accounts" yaml:"overdue_accounts"`

	InvoicesReady   int `json:"invoices_ready" yaml:"invoices_ready"`
	OverduePayments int `json:"overdue_payments" yaml:"overdue_payments"`

	ActiveUsers           int     `json:"active_users" yaml:"active_users"`
	ClientOrganizations   int     `json:"client_organizations" yaml:"client_organizations"`
	MonthlyConversations  int     `json:"monthly_conversations" yaml:"monthly_conversations"`
	ConversationGrowthPct float64 `json:"conversation_growth_pct" yaml:"conversation_growth_pct"`
	SatisfactionPct       float64 `json:"satisfaction_pct" yaml:"satisfaction_pct"`

	UptimePct     float64 `json:"uptime_pct" yaml:"uptime_pct"`
	APIResponseMS int     `json:"api_response_ms" yaml:"api_response_ms"`

	MonthlyRecurringRevenue int     `json:"monthly_recurring_revenue" yaml:"monthly_recurring_revenue"`
	RevenueGrowthPct        float64 `json:"revenue_growth_pct" yaml:"revenue_growth_pct"`
	CollectionRatePct       float64 `json:"collection_rate_pct" yaml:"collection_rate_pct"`

	Alerts []Alert `json:"alerts" yaml:"alerts"`
}

// MetricsProvider supplies platform figures to the admin rule table.
type MetricsProvider interface {
	PlatformMetrics(ctx context.Context) (PlatformMetrics, error)
}

// StaticMetrics always returns the same snapshot.
type StaticMetrics struct {
	Metrics PlatformMetrics
}

func (s StaticMetrics) PlatformMetrics(context.Context) (PlatformMetrics, error) {
	m := s.Metrics
	m.Alerts = append([]Alert(nil), s.Metrics.Alerts...)
	return m, nil
}

// DefaultPlatformMetrics is the canned demo snapshot.
func DefaultPlatformMetrics() PlatformMetrics {
	return PlatformMetrics{
		UpcomingRenewals:        3,
		OverdueAccounts:         2,
		InvoicesReady:           12,
		OverduePayments:         5,
		ActiveUsers:             847,
		ClientOrganizations:     156,
		MonthlyConversations:    12450,
		ConversationGrowthPct:   23,
		SatisfactionPct:         94.2,
		UptimePct:               99.97,
		APIResponseMS:           145,
		MonthlyRecurringRevenue: 487300,
		RevenueGrowthPct:        31,
		CollectionRatePct:       94,
		Alerts: []Alert{
			{Summary: "TechCorp's usage is 150% over plan limit"},
			{Summary: "HealthPlus has an overdue payment of $12,500"},
		},
	}
}

var printer = message.NewPrinter(language.English)

// formatCount renders n with thousands separators, e.g. 12,450.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatPct renders a percentage without a trailing .0.
func formatPct(p float64) string {
	return printer.Sprintf("%v%%", p)
}
