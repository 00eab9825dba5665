package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/sessions"
	"github.com/Desarso/tradesummit/stores"
)

func (s *Server) health(c *gin.Context) {
	status := gin.H{"status": "ok", "widgets": s.Manager.Len()}
	if s.Store != nil {
		if err := s.Store.Ping(); err != nil {
			s.Logger.Warn("store ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		status["store"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}

// widget resolves the :id parameter, writing a 404 when it is unknown.
func (s *Server) widget(c *gin.Context) (*sessions.WidgetSession, bool) {
	ws, err := s.Manager.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, sessions.ErrWidgetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return ws, true
}

func widgetClosed(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{"error": "widget is closed"})
}

func (s *Server) createWidget(c *gin.Context) {
	var req models.Open_Widget_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ws, err := s.Manager.Create(req.Audience, req.User_Name)
	if err != nil {
		if errors.Is(err, sessions.ErrInvalidAudience) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ws.Snapshot())
}

func (s *Server) getWidget(c *gin.Context) {
	if ws, ok := s.widget(c); ok {
		c.JSON(http.StatusOK, ws.Snapshot())
	}
}

func (s *Server) deleteWidget(c *gin.Context) {
	if err := s.Manager.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) openWidget(c *gin.Context) {
	if ws, ok := s.widget(c); ok {
		ws.Open()
		c.JSON(http.StatusOK, ws.Snapshot())
	}
}

func (s *Server) closeWidget(c *gin.Context) {
	if ws, ok := s.widget(c); ok {
		ws.Close()
		c.JSON(http.StatusOK, ws.Snapshot())
	}
}

func (s *Server) setInput(c *gin.Context) {
	ws, ok := s.widget(c)
	if !ok {
		return
	}
	var req models.Input_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !ws.SetInput(req.Text) {
		widgetClosed(c)
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot())
}

func (s *Server) clickSuggestion(c *gin.Context) {
	ws, ok := s.widget(c)
	if !ok {
		return
	}
	var req models.Suggestion_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !ws.ClickSuggestion(req.Text) {
		c.JSON(http.StatusConflict, gin.H{"error": "widget is not idle"})
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot())
}

// submitMessage answers 200 even when the submit is ignored; Accepted
// tells the client which happened.
func (s *Server) submitMessage(c *gin.Context) {
	ws, ok := s.widget(c)
	if !ok {
		return
	}
	var req models.Submit_Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var msgs []models.Message
	var accepted bool
	if req.Text != "" {
		msgs, accepted = ws.Send(c.Request.Context(), req.Text)
	} else {
		msgs, accepted = ws.Submit(c.Request.Context())
	}
	c.JSON(http.StatusOK, models.Submit_Response{Accepted: accepted, Messages: msgs})
}

func (s *Server) clickAction(c *gin.Context) {
	ws, ok := s.widget(c)
	if !ok {
		return
	}
	var req models.Action_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ack, effect, ok := ws.ClickAction(req.Action)
	if !ok {
		widgetClosed(c)
		return
	}
	resp := models.Action_Response{Acknowledgment: &ack}
	if effect != nil {
		e := effect.Response()
		resp.Effect = &e
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) streamEvents(c *gin.Context) {
	ws, ok := s.widget(c)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if err := sessions.NewEventStream(ws, conn).Run(c.Request.Context()); err != nil {
		s.Logger.Debug("event stream ended", zap.String("widget_id", ws.ID), zap.Error(err))
	}
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "conversation archive is disabled"})
		return false
	}
	return true
}

func (s *Server) listConversations(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	audience := models.Audience(c.Query("audience"))
	if audience != "" && !audience.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audience"})
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	convs, err := s.Store.ListConversations(audience, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

func (s *Server) getConversation(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id := c.Param("id")
	info, err := s.Store.GetConversation(id)
	if err != nil {
		if errors.Is(err, stores.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rows, err := s.Store.FetchHistory(id, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	records, err := s.Store.ListActions(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := models.Conversation_Response{
		Conversation: info,
		Messages:     make([]models.Message, len(rows)),
		Actions:      make([]models.ActionInfo, len(records)),
	}
	for i, row := range rows {
		resp.Messages[i] = row.ToModel()
	}
	for i, r := range records {
		resp.Actions[i] = models.ActionInfo{Action: r.Action, Effect: r.Effect, ClickedAt: r.ClickedAt}
	}
	c.JSON(http.StatusOK, resp)
}
