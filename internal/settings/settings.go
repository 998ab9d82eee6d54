// Package settings persists the user's panel settings record.
//
// The record is always read and written wholesale: a Save replaces whatever
// the store held before. Backends implement Store; the panel only ever sees
// the interface so tests can substitute MemoryStore.
package settings

import "strings"

// Backend identifiers offered in the settings modal.
const (
	ModelOpenAI    = "openai"
	ModelAnthropic = "anthropic"
	ModelLocal     = "local"
	ModelOffline   = "offline"
)

// DefaultModel is used when the stored record names no model.
const DefaultModel = ModelOpenAI

// KnownModels lists the backends in display order.
var KnownModels = []string{ModelOpenAI, ModelAnthropic, ModelLocal, ModelOffline}

// ModelDisplayName returns the label shown for a backend identifier.
func ModelDisplayName(model string) string {
	switch model {
	case ModelOpenAI:
		return "OpenAI"
	case ModelAnthropic:
		return "Anthropic"
	case ModelLocal:
		return "Local (Ollama)"
	case ModelOffline:
		return "Offline templates"
	default:
		return model
	}
}

// Settings is the persisted record.
type Settings struct {
	Model       string `json:"model"`
	ProjectRoot string `json:"projectRoot"`
	AutoRun     bool   `json:"autoRun"`
}

// Default returns the record used when nothing has been saved yet.
func Default() Settings {
	return Settings{Model: DefaultModel}
}

// Normalize fills defaults for missing fields.
func (s Settings) Normalize() Settings {
	s.Model = strings.TrimSpace(s.Model)
	if s.Model == "" {
		s.Model = DefaultModel
	}
	return s
}

// Store reads and writes the settings record.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}
