package app

import "testing"

func TestHandleSlashCommand(t *testing.T) {
	tests := []struct {
		input   string
		handled bool
	}{
		{"/help", true},
		{"  /HELP  ", true},
		{"/settings", true},
		{"/unknown", false},
		{"make a bracket", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := newTestEnv(t)
			_, handled := env.model.handleSlashCommand(tt.input)
			if handled != tt.handled {
				t.Errorf("handleSlashCommand(%q) handled = %v, want %v", tt.input, handled, tt.handled)
			}
		})
	}
}
