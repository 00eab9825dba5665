package stores

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Desarso/tradesummit/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// Message is an archived transcript entry.
type Message struct {
	gorm.Model
	ConversationID string    `gorm:"index;not null"`
	MessageID      string    `gorm:"uniqueIndex;not null"`
	Sequence       int       `gorm:"not null"`
	Type           string    `gorm:"not null"` // "user", "agent"
	Content        string    `gorm:"type:text"`
	SentAt         time.Time `gorm:"not null"`

	SuggestionsJSON   string                `gorm:"type:text"`
	ActionButtonsJSON string                `gorm:"type:text"`
	Suggestions       []string              `gorm:"-"`
	ActionButtons     []models.ActionButton `gorm:"-"`
}

// BeforeSave marshals Suggestions and ActionButtons into their JSON columns.
func (m *Message) BeforeSave(tx *gorm.DB) error {
	if len(m.Suggestions) > 0 {
		data, err := json.Marshal(m.Suggestions)
		if err != nil {
			return err
		}
		m.SuggestionsJSON = string(data)
	}
	if len(m.ActionButtons) > 0 {
		data, err := json.Marshal(m.ActionButtons)
		if err != nil {
			return err
		}
		m.ActionButtonsJSON = string(data)
	}
	return nil
}

// AfterFind restores Suggestions and ActionButtons.
func (m *Message) AfterFind(tx *gorm.DB) error {
	if m.SuggestionsJSON != "" {
		if err := json.Unmarshal([]byte(m.SuggestionsJSON), &m.Suggestions); err != nil {
			return err
		}
	}
	if m.ActionButtonsJSON != "" {
		if err := json.Unmarshal([]byte(m.ActionButtonsJSON), &m.ActionButtons); err != nil {
			return err
		}
	}
	return nil
}

// ToModel converts the row back into a transcript message.
func (m Message) ToModel() models.Message {
	return models.Message{
		ID:            m.MessageID,
		Sequence:      m.Sequence,
		Type:          models.MessageType(m.Type),
		Content:       m.Content,
		Timestamp:     m.SentAt,
		Suggestions:   m.Suggestions,
		ActionButtons: m.ActionButtons,
	}
}

// Conversation is one open period of a widget, from open to close.
type Conversation struct {
	gorm.Model
	ConversationID string `gorm:"uniqueIndex;not null"`
	WidgetID       string `gorm:"index;not null"`
	Audience       string `gorm:"index;not null"`
	UserName       string
	MessageCount   int       `gorm:"default:0"`
	ClosedAt       *time.Time
	Messages       []Message `gorm:"foreignKey:ConversationID;references:ConversationID"`
}

// Info returns the listing view of the conversation.
func (c Conversation) Info() models.ConversationInfo {
	return models.ConversationInfo{
		ConversationID: c.ConversationID,
		WidgetID:       c.WidgetID,
		Audience:       models.Audience(c.Audience),
		UserName:       c.UserName,
		MessageCount:   c.MessageCount,
		CreatedAt:      c.CreatedAt,
		ClosedAt:       c.ClosedAt,
	}
}

// ActionRecord is an audit entry for one action button click.
type ActionRecord struct {
	ID             uint      `gorm:"primarykey"`
	CreatedAt      time.Time
	ConversationID string    `gorm:"index;not null"`
	Action         string    `gorm:"not null"`
	Effect         string    // empty when the action had no effect
	ClickedAt      time.Time `gorm:"not null"`
}

// MessageStore archives widget conversations.
type MessageStore interface {
	// Conversation operations
	CreateConversation(convoID, widgetID string, audience models.Audience, userName string) error
	CloseConversation(convoID string, closedAt time.Time) error
	GetConversation(convoID string) (models.ConversationInfo, error)
	ListConversations(audience models.Audience, limit int) ([]models.ConversationInfo, error)

	// Message operations
	SaveMessage(convoID string, msg models.Message) error
	FetchHistory(convoID string, limit int) ([]Message, error)

	// Action audit
	SaveAction(record *ActionRecord) error
	ListActions(convoID string) ([]ActionRecord, error)

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type" yaml:"type"`             // "sqlite", "postgres"
	Connection string            `json:"connection" yaml:"connection"` // file path or DSN
	Options    map[string]string `json:"options" yaml:"options"`
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	if c.Options == nil {
		c.Options = make(map[string]string)
	}
	c.Options[key] = value
	return c
}
