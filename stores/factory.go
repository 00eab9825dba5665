package stores

import (
	"fmt"
)

// NewStore creates a new message store based on the configuration.
// A nil config or an empty type means archiving is disabled.
func NewStore(config *StoreConfig) (MessageStore, error) {
	if config == nil || config.Type == "" || config.Type == "none" {
		return nil, nil
	}
	switch config.Type {
	case "sqlite":
		store, err := NewSQLiteStore(config)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		store, err := NewPostgresStore(config)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// PostgresDSN builds a key/value DSN from its parts.
func PostgresDSN(host, user, password, dbname string, port int) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)
}
