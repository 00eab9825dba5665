package openrouter

import (
	"errors"
	"testing"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", "", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	m, err := New("test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.BaseURL != OpenRouterBaseURL {
		t.Errorf("expected base url %s, got %s", OpenRouterBaseURL, m.BaseURL)
	}
	if m.Model != DefaultModel {
		t.Errorf("expected model %s, got %s", DefaultModel, m.Model)
	}
}
