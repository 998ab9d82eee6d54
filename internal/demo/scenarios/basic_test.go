package scenarios

import (
	"os"
	"testing"

	"github.com/zhubert/cadcopilot/internal/demo"
	"github.com/zhubert/cadcopilot/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	_ = logger.Init(os.DevNull)
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 2 {
		t.Errorf("All() returned %d scenarios, want 2", len(all))
	}
	for _, s := range all {
		c := *s
		if err := c.Validate(); err != nil {
			t.Errorf("scenario %q: %v", s.Name, err)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
	}{
		{"basic", true},
		{"recovery", true},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := Get(tt.name)
			found := scenario != nil

			if found != tt.wantFound {
				t.Errorf("Get(%q) found = %v, want %v", tt.name, found, tt.wantFound)
			}
		})
	}
}

func TestScenariosRun(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			s := *s
			frames, err := demo.NewRecorder(demo.DefaultOptions()).Record(&s)
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if len(frames) < 2 {
				t.Errorf("got %d frames, want at least 2", len(frames))
			}
		})
	}
}
