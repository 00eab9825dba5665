package server

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/metrics"
	"github.com/Desarso/tradesummit/sessions"
	"github.com/Desarso/tradesummit/stores"
)

//go:embed openapi.yaml
var openAPISpec []byte

type Options struct {
	RateRPS   float64 // per client; 0 disables limiting
	RateBurst int
}

// Server exposes the widget manager over HTTP.
type Server struct {
	Manager *sessions.Manager
	Store   stores.MessageStore
	Metrics *metrics.Collectors
	Logger  *zap.Logger

	opts     Options
	limiters *limiterPool
	upgrader websocket.Upgrader
}

func New(manager *sessions.Manager, store stores.MessageStore, collectors *metrics.Collectors, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collectors == nil {
		collectors = metrics.New()
	}
	s := &Server{
		Manager: manager,
		Store:   store,
		Metrics: collectors,
		Logger:  logger.Named("http"),
		opts:    opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if opts.RateRPS > 0 {
		s.limiters = newLimiterPool(opts.RateRPS, opts.RateBurst)
	}
	return s
}

// EvictIdleClients forgets rate limiters of clients idle for ttl.
func (s *Server) EvictIdleClients(ttl time.Duration) int {
	if s.limiters == nil {
		return 0
	}
	n := s.limiters.evictIdle(ttl)
	if n > 0 {
		s.Logger.Debug("evicted idle rate limiters", zap.Int("count", n))
	}
	return n
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})))
	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openAPISpec)
	})
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.yaml"))))

	api := router.Group("/api/v1")
	if s.limiters != nil {
		api.Use(rateLimit(s.limiters))
	}

	widgets := api.Group("/widgets")
	widgets.POST("", s.createWidget)
	widgets.GET("/:id", s.getWidget)
	widgets.DELETE("/:id", s.deleteWidget)
	widgets.POST("/:id/open", s.openWidget)
	widgets.POST("/:id/close", s.closeWidget)
	widgets.PUT("/:id/input", s.setInput)
	widgets.POST("/:id/suggestions", s.clickSuggestion)
	widgets.POST("/:id/messages", s.submitMessage)
	widgets.POST("/:id/actions", s.clickAction)
	widgets.GET("/:id/events", s.streamEvents)

	admin := api.Group("/admin")
	admin.GET("/conversations", s.listConversations)
	admin.GET("/conversations/:id", s.getConversation)

	return router
}
