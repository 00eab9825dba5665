package tradesummit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/metrics"
	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/models/gemini"
	"github.com/Desarso/tradesummit/models/openrouter"
	"github.com/Desarso/tradesummit/resolvers"
	"github.com/Desarso/tradesummit/sessions"
	"github.com/Desarso/tradesummit/stores"
)

// App is the assembled service: agents, widget manager, archive and metrics.
type App struct {
	Config  *Config
	Logger  *zap.Logger
	Store   stores.MessageStore // nil when archiving is disabled
	Metrics *metrics.Collectors
	Manager *sessions.Manager
	Aria    *Agent
	Atlas   *Agent
}

// NewApp wires the service from cfg. The remote provider is chosen here,
// once; without a credential Aria answers from the local rule table.
func NewApp(ctx context.Context, cfg *Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	store, err := stores.NewStore(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}
	app.Store = store

	generator, err := NewGenerator(ctx, cfg.Remote)
	if err != nil {
		app.closeStore()
		return nil, err
	}

	var platform resolvers.PlatformMetrics
	if cfg.PlatformMetrics != nil {
		platform = *cfg.PlatformMetrics
	} else {
		platform = resolvers.DefaultPlatformMetrics()
	}
	figures := resolvers.StaticMetrics{Metrics: platform}
	resolverLog := logger.Named("resolver")

	ariaLocal := app.observed("local", resolvers.NewLocal(resolvers.CustomerTable(), figures, resolverLog))
	ariaResolver := resolvers.Select(generator, resolvers.RemoteConfig{
		Timeout:      cfg.Remote.Timeout,
		HistoryLimit: cfg.Remote.HistoryLimit,
		Logger:       resolverLog,
		Observe:      func(outcome string) { app.Metrics.ResolverOutcome("remote", outcome) },
	}, ariaLocal)
	if generator != nil {
		logger.Info("remote resolver enabled", zap.String("provider", cfg.Remote.Provider), zap.String("model", cfg.Remote.Model))
	} else {
		logger.Info("no remote credential, answering from local rules")
	}

	atlasResolver := resolvers.Delayed{
		Resolver: app.observed("local", resolvers.NewLocal(resolvers.AdminTable(), figures, resolverLog)),
		Delay:    cfg.Widgets.AtlasDelay,
	}

	app.Aria = NewAria(ariaResolver, cfg.Widgets.ActionDelay)
	app.Atlas = NewAtlas(atlasResolver, cfg.Widgets.ActionDelay)

	app.Manager = sessions.NewManager(map[models.Audience]sessions.AgentInterface{
		models.AudienceCustomer: app.Aria,
		models.AudienceProspect: app.Aria,
		models.AudienceAdmin:    app.Atlas,
	}, sessions.ManagerConfig{
		Store:  store,
		Logger: logger,
		OnAction: func(audience models.Audience, action, effect string) {
			app.Metrics.Action(string(audience), action, effect)
		},
	})
	app.Metrics.TrackWidgets(app.Manager.Len)
	return app, nil
}

func (a *App) observed(kind string, r resolvers.Resolver) resolvers.Resolver {
	return resolvers.ResolverFunc(func(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
		res, err := r.Resolve(ctx, userText, audience, history)
		outcome := resolvers.OutcomeOK
		if err != nil {
			outcome = resolvers.OutcomeError
		}
		a.Metrics.ResolverOutcome(kind, outcome)
		return res, err
	})
}

// NewGenerator returns the configured text generator, or nil when the
// provider is local or has no credential.
func NewGenerator(ctx context.Context, remote RemoteSettings) (resolvers.TextGenerator, error) {
	if remote.APIKey == "" {
		return nil, nil
	}
	switch remote.Provider {
	case ProviderGemini:
		g, err := gemini.New(ctx, remote.APIKey, remote.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return g, nil
	case ProviderOpenRouter:
		o, err := openrouter.New(remote.APIKey, remote.BaseURL, remote.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create openrouter model: %w", err)
		}
		return o, nil
	}
	return nil, nil
}

func (a *App) closeStore() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("error closing store", zap.Error(err))
		}
	}
}

// StartReaper schedules idle widget removal per the widget settings.
func (a *App) StartReaper() error {
	if a.Config.Widgets.IdleTTL <= 0 || a.Config.Widgets.ReapSchedule == "" {
		return nil
	}
	return a.Manager.StartReaper(a.Config.Widgets.ReapSchedule, a.Config.Widgets.IdleTTL)
}

// Close stops every widget and releases the store.
func (a *App) Close() {
	a.Manager.Stop()
	a.closeStore()
}
