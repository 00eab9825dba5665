package resolvers

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/models"
)

// Rule pairs a keyword predicate with the reply it produces.
type Rule struct {
	Name string
	// Keywords match when any of them is a substring of the lower-cased message.
	Keywords []string
	// Audiences restricts the rule; empty means every audience.
	Audiences []models.Audience
	Build     func(m PlatformMetrics) models.ResolverResult
}

// Matches reports whether the rule applies to an already lower-cased message.
func (r Rule) Matches(normalized string, audience models.Audience) bool {
	if len(r.Audiences) > 0 && !slices.Contains(r.Audiences, audience) {
		return false
	}
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Table is an ordered rule list. The first matching rule wins.
type Table struct {
	Name    string
	Rules   []Rule
	Default func(m PlatformMetrics) models.ResolverResult
	// Refine, when set, post-processes every reply using the raw user text.
	Refine func(userText string, audience models.Audience, res models.ResolverResult) models.ResolverResult
}

// Match returns the first rule that applies to text.
func (t Table) Match(text string, audience models.Audience) (Rule, bool) {
	normalized := strings.ToLower(text)
	for _, rule := range t.Rules {
		if rule.Matches(normalized, audience) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Resolve evaluates the table. It performs no I/O.
func (t Table) Resolve(text string, audience models.Audience, m PlatformMetrics) models.ResolverResult {
	var res models.ResolverResult
	if rule, ok := t.Match(text, audience); ok {
		res = rule.Build(m)
	} else {
		res = t.Default(m)
	}
	if t.Refine != nil {
		res = t.Refine(text, audience, res)
	}
	return res
}

// Local resolves messages against a rule table.
type Local struct {
	Table   Table
	Metrics MetricsProvider
	Logger  *zap.Logger
}

// NewLocal creates a local resolver. A nil provider uses the canned metrics.
func NewLocal(table Table, metrics MetricsProvider, logger *zap.Logger) *Local {
	if metrics == nil {
		metrics = StaticMetrics{Metrics: DefaultPlatformMetrics()}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{Table: table, Metrics: metrics, Logger: logger}
}

func (l *Local) Resolve(ctx context.Context, userText string, audience models.Audience, _ []models.HistoryTurn) (models.ResolverResult, error) {
	m, err := l.Metrics.PlatformMetrics(ctx)
	if err != nil {
		l.Logger.Warn("platform metrics unavailable, using canned figures",
			zap.String("table", l.Table.Name), zap.Error(err))
		m = DefaultPlatformMetrics()
	}
	return l.Table.Resolve(userText, audience, m), nil
}
