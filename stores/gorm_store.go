package stores

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Desarso/tradesummit/models"
)

// gormStore holds the queries shared by every gorm-backed store.
type gormStore struct {
	db *gorm.DB
}

func openGorm(dialector gorm.Dialector, options map[string]string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if options["log_sql"] == "true" {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(options["max_open_conns"]); err == nil && n > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(n)
	}
	if err := db.AutoMigrate(&Conversation{}, &Message{}, &ActionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return db, nil
}

func (s *gormStore) ready() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return nil
}

// Close closes the database connection
func (s *gormStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *gormStore) Ping() error {
	if err := s.ready(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *gormStore) CreateConversation(convoID, widgetID string, audience models.Audience, userName string) error {
	if err := s.ready(); err != nil {
		return err
	}
	conv := Conversation{
		ConversationID: convoID,
		WidgetID:       widgetID,
		Audience:       string(audience),
		UserName:       userName,
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation %s: %w", convoID, err)
	}
	return nil
}

func (s *gormStore) CloseConversation(convoID string, closedAt time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	res := s.db.Model(&Conversation{}).Where("conversation_id = ?", convoID).Update("closed_at", closedAt)
	if res.Error != nil {
		return fmt.Errorf("failed to close conversation %s: %w", convoID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("close %s: %w", convoID, ErrConversationNotFound)
	}
	return nil
}

func (s *gormStore) GetConversation(convoID string) (models.ConversationInfo, error) {
	if err := s.ready(); err != nil {
		return models.ConversationInfo{}, err
	}
	var conv Conversation
	err := s.db.Where("conversation_id = ?", convoID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ConversationInfo{}, fmt.Errorf("get %s: %w", convoID, ErrConversationNotFound)
	}
	if err != nil {
		return models.ConversationInfo{}, fmt.Errorf("failed to fetch conversation %s: %w", convoID, err)
	}
	return conv.Info(), nil
}

// ListConversations returns the newest conversations first. An empty
// audience lists every audience; limit <= 0 means no limit.
func (s *gormStore) ListConversations(audience models.Audience, limit int) ([]models.ConversationInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := s.db.Order("created_at DESC").Order("id DESC")
	if audience != "" {
		query = query.Where("audience = ?", string(audience))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var convs []Conversation
	if err := query.Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	result := make([]models.ConversationInfo, len(convs))
	for i, c := range convs {
		result[i] = c.Info()
	}
	return result, nil
}

// SaveMessage archives msg and bumps the conversation's message count.
func (s *gormStore) SaveMessage(convoID string, msg models.Message) error {
	if err := s.ready(); err != nil {
		return err
	}
	row := Message{
		ConversationID: convoID,
		MessageID:      msg.ID,
		Sequence:       msg.Sequence,
		Type:           string(msg.Type),
		Content:        msg.Content,
		SentAt:         msg.Timestamp,
		Suggestions:    msg.Suggestions,
		ActionButtons:  msg.ActionButtons,
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create message record: %w", err)
		}
		res := tx.Model(&Conversation{}).
			Where("conversation_id = ?", convoID).
			Update("message_count", gorm.Expr("message_count + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to update conversation message count: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("save message: %s: %w", convoID, ErrConversationNotFound)
		}
		return nil
	})
}

// FetchHistory retrieves messages for a conversation in sequence order.
// limit: maximum number of trailing messages (0 = all)
func (s *gormStore) FetchHistory(convoID string, limit int) ([]Message, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := s.db.Where("conversation_id = ?", convoID).Order("sequence ASC")
	if limit > 0 {
		var count int64
		if err := s.db.Model(&Message{}).Where("conversation_id = ?", convoID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count messages: %w", err)
		}
		if count > int64(limit) {
			query = query.Offset(int(count) - limit)
		}
	}
	var msgs []Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return msgs, nil
}

func (s *gormStore) SaveAction(record *ActionRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to save action %s: %w", record.Action, err)
	}
	return nil
}

func (s *gormStore) ListActions(convoID string) ([]ActionRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var records []ActionRecord
	err := s.db.Where("conversation_id = ?", convoID).Order("clicked_at ASC").Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch actions: %w", err)
	}
	return records, nil
}
