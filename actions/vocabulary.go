package actions

// Action identifiers shared by the resolver rule tables and the dispatchers.
const (
	GetStarted        = "get_started"
	ScheduleDemo      = "schedule_demo"
	BookDemo          = "book_demo"
	DemoVideo         = "demo_video"
	ViewPricing       = "view_pricing"
	ViewIntegrations  = "view_integrations"
	IndustrySolutions = "industry_solutions"
	SecurityGuide     = "security_guide"
	BillingDashboard  = "billing_dashboard"
	AgentDashboard    = "agent_dashboard"
)

// Admin-only identifiers.
const (
	GenerateOverdueReport = "generate_overdue_report"
	SendRenewals          = "send_renewals"
	GenerateInvoices      = "generate_invoices"
	PaymentReminders      = "payment_reminders"
	ExecReport            = "exec_report"
	ExportData            = "export_data"
	SecurityAudit         = "security_audit"
	BulkUsers             = "bulk_users"
	SystemReport          = "system_report"
	ScheduleMaintenance   = "schedule_maintenance"
	FinancialReport       = "financial_report"
	RevenueForecast       = "revenue_forecast"
	HandleUrgent          = "handle_urgent"
	AutoActions           = "auto_actions"
)

// Page anchors on the marketing site.
const (
	AnchorPricing      = "pricing"
	AnchorIntegrations = "integrations"
	AnchorIndustries   = "industries"
)

// DemoBookingURL is where demo bookings are made.
const DemoBookingURL = "https://calendly.com/tradesummit-demo"

var customerVocabulary = []string{
	GetStarted, ScheduleDemo, BookDemo, DemoVideo, ViewPricing, ViewIntegrations,
	IndustrySolutions, SecurityGuide, BillingDashboard, AgentDashboard,
}

var adminVocabulary = []string{
	GenerateOverdueReport, SendRenewals, GenerateInvoices, PaymentReminders,
	ExecReport, ExportData, SecurityAudit, BulkUsers, SystemReport,
	ScheduleMaintenance, FinancialReport, RevenueForecast, HandleUrgent, AutoActions,
}
