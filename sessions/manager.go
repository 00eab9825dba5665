package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/stores"
)

type ManagerConfig struct {
	Store    stores.MessageStore // nil disables archiving
	Logger   *zap.Logger
	Schedule Scheduler
	OnAction ActionObserver
	Now      func() time.Time
}

// Manager is the registry of live widgets. Widgets are independent; the
// manager only creates, finds and retires them.
type Manager struct {
	agents  map[models.Audience]AgentInterface
	archive *Archiver
	cfg     ManagerConfig
	logger  *zap.Logger

	mu      sync.RWMutex
	widgets map[string]*WidgetSession

	jobsMu  sync.Mutex
	cron    *cron.Cron
	reaping bool
}

// NewManager creates a manager serving one agent per audience.
func NewManager(agents map[models.Audience]AgentInterface, cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Schedule == nil {
		cfg.Schedule = afterFunc
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &Manager{
		agents:  agents,
		cfg:     cfg,
		logger:  cfg.Logger.Named("widgets"),
		widgets: make(map[string]*WidgetSession),
		cron:    cron.New(),
	}
	if cfg.Store != nil {
		m.archive = NewArchiver(cfg.Store, m.logger.Named("archive"))
	}
	return m
}

// Create opens a new widget for audience. The intro is already seeded.
func (m *Manager) Create(audience models.Audience, userName string) (*WidgetSession, error) {
	if !audience.Valid() {
		return nil, fmt.Errorf("%q: %w", audience, ErrInvalidAudience)
	}
	agent, ok := m.agents[audience]
	if !ok {
		return nil, fmt.Errorf("no agent serves %q: %w", audience, ErrInvalidAudience)
	}

	ws := NewWidgetSession(uuid.New().String(), audience, userName, agent, m.archive, m.logger)
	ws.Schedule = m.cfg.Schedule
	ws.OnAction = m.cfg.OnAction
	ws.Now = m.cfg.Now

	m.mu.Lock()
	m.widgets[ws.ID] = ws
	m.mu.Unlock()

	ws.Open()
	return ws, nil
}

func (m *Manager) Get(widgetID string) (*WidgetSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ws, ok := m.widgets[widgetID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", widgetID, ErrWidgetNotFound)
	}
	return ws, nil
}

// Remove closes and forgets a widget.
func (m *Manager) Remove(widgetID string) error {
	m.mu.Lock()
	ws, ok := m.widgets[widgetID]
	delete(m.widgets, widgetID)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", widgetID, ErrWidgetNotFound)
	}
	ws.Close()
	ws.closeSubscribers()
	return nil
}

// Len is the number of live widgets.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.widgets)
}

// ReapIdle removes widgets idle for longer than ttl and returns how many
// were removed.
func (m *Manager) ReapIdle(ttl time.Duration) int {
	cutoff := m.cfg.Now().Add(-ttl)

	m.mu.RLock()
	var stale []string
	for id, ws := range m.widgets {
		if ws.IdleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if err := m.Remove(id); err == nil {
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("reaped idle widgets", zap.Int("count", removed), zap.Duration("ttl", ttl))
	}
	return removed
}

// StartReaper runs ReapIdle on a cron schedule ("@every 1m", "*/5 * * * *", ...).
func (m *Manager) StartReaper(schedule string, ttl time.Duration) error {
	m.jobsMu.Lock()
	defer m.jobsMu.Unlock()
	if m.reaping {
		return fmt.Errorf("reaper already started")
	}
	if err := m.AddJob(schedule, func() { m.ReapIdle(ttl) }); err != nil {
		return err
	}
	m.reaping = true
	m.logger.Info("idle reaper started", zap.String("schedule", schedule), zap.Duration("ttl", ttl))
	return nil
}

// AddJob runs job on a cron schedule next to the reaper until Stop.
func (m *Manager) AddJob(schedule string, job func()) error {
	if _, err := m.cron.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	m.cron.Start()
	return nil
}

// Flush waits for pending archive writes.
func (m *Manager) Flush() {
	m.archive.Flush()
}

// Stop halts the reaper, closes every widget and drains the archive.
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	m.mu.RLock()
	ids := make([]string, 0, len(m.widgets))
	for id := range m.widgets {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	for _, id := range ids {
		m.Remove(id)
	}
	m.archive.Stop()
}
