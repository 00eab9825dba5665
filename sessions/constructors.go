package sessions

import (
	"time"

	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/models"
)

// NewWidgetSession creates a closed widget. archive may be nil.
func NewWidgetSession(widgetID string, audience models.Audience, userName string, agent AgentInterface, archive *Archiver, logger *zap.Logger) *WidgetSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WidgetSession{
		ID:       widgetID,
		Audience: audience,
		UserName: userName,
		Agent:    agent,
		Archive:  archive,
		Logger: logger.With(
			zap.String("widget_id", widgetID),
			zap.String("audience", string(audience)),
			zap.String("agent", agent.Name()),
		),
		Schedule: afterFunc,
		Now:      time.Now,
	}
}
