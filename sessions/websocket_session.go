package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// WebSocketWriter serializes writes to a WebSocket connection.
type WebSocketWriter struct {
	Conn   *websocket.Conn
	Logger *zap.Logger
	mu     sync.Mutex
}

func (w *WebSocketWriter) WriteEvent(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.Conn.WriteJSON(ev)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.Conn.WriteJSON(map[string]string{"type": "error", "error": message})
}

func (w *WebSocketWriter) WritePing() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// EventStream forwards a widget's events to one WebSocket client.
type EventStream struct {
	Widget *WidgetSession
	Writer *WebSocketWriter
	Logger *zap.Logger
}

// NewEventStream wires a connection to a widget.
func NewEventStream(ws *WidgetSession, conn *websocket.Conn) *EventStream {
	logger := ws.Logger.With(zap.String("transport", "websocket"))
	return &EventStream{
		Widget: ws,
		Writer: &WebSocketWriter{Conn: conn, Logger: logger},
		Logger: logger,
	}
}

// Run sends the current state, then every event until the client goes
// away, ctx ends, or the widget is removed.
func (es *EventStream) Run(ctx context.Context) error {
	snap, events, unsubscribe := es.Widget.SnapshotAndSubscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go es.readLoop(cancel)

	if err := es.Writer.WriteEvent(Event{Type: EventState, State: snap.State}); err != nil {
		return err
	}
	for i := range snap.Transcript {
		if err := es.Writer.WriteEvent(Event{Type: EventMessage, Message: &snap.Transcript[i]}); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				es.Logger.Info("widget removed, closing event stream")
				es.Writer.WriteError("widget closed")
				return nil
			}
			if err := es.Writer.WriteEvent(ev); err != nil {
				es.Logger.Warn("error writing event", zap.Error(err))
				return err
			}
		case <-ticker.C:
			if err := es.Writer.WritePing(); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// readLoop discards client frames and cancels the stream when the
// connection fails. It must run for pongs to be processed.
func (es *EventStream) readLoop(cancel context.CancelFunc) {
	defer cancel()
	conn := es.Writer.Conn
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				es.Logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}
