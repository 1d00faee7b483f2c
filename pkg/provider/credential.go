package provider

import (
	"strings"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

var placeholderKeys = map[string]bool{
	"":             true,
	"demo":         true,
	"your_api_key": true,
	"changeme":     true,
	"xxx":          true,
}

// IsPlaceholder reports whether key is missing or an obvious template value.
func IsPlaceholder(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if placeholderKeys[k] {
		return true
	}
	return strings.HasPrefix(k, "your_") || strings.HasPrefix(k, "<")
}

// RequireKey returns a ConfigurationError when key is a placeholder.
func RequireKey(source, key string) error {
	if IsPlaceholder(key) {
		return &model.ConfigurationError{Source: source, Reason: "api key missing or placeholder"}
	}
	return nil
}
