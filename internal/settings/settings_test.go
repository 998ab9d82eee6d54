package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/cadcopilot/internal/errors"
)

var saved = Settings{Model: ModelAnthropic, ProjectRoot: "/tmp/proj", AutoRun: true}

// Each case builds a fresh store over the same location, so a reload goes
// through the backend rather than any cached value.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	dir := t.TempDir()
	mem := NewMemoryStore()
	return map[string]func() Store{
		"file": func() Store { return NewFileStore(filepath.Join(dir, "nested", "settings.json")) },
		"sqlite": func() Store {
			s, err := OpenSQLite(filepath.Join(dir, "settings.db"))
			if err != nil {
				t.Fatalf("OpenSQLite: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
		"memory": func() Store { return mem },
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			if err := open().Save(saved); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := open().Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != saved {
				t.Errorf("Load() = %+v, want %+v", got, saved)
			}
		})
	}
}

func TestStore_DefaultsWhenEmpty(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			got, err := open().Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != Default() {
				t.Errorf("Load() = %+v, want defaults %+v", got, Default())
			}
		})
	}
}

func TestStore_SaveOverwritesWholesale(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			if err := open().Save(saved); err != nil {
				t.Fatalf("Save: %v", err)
			}
			next := Settings{Model: ModelLocal}
			if err := open().Save(next); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, _ := open().Load()
			if got != next {
				t.Errorf("Load() = %+v, want %+v", got, next)
			}
		})
	}
}

func TestFileStore_MissingFieldsTakeDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"projectRoot":"/work"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{Model: DefaultModel, ProjectRoot: "/work"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path).Load()
	if !errors.Is(err, errors.KindIO) {
		t.Errorf("expected KindIO error, got %v", err)
	}
}

func TestFileStore_UsesJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := NewFileStore(path).Save(saved); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"model"`, `"projectRoot"`, `"autoRun"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("saved file missing key %s: %s", key, data)
		}
	}
}

func TestMemoryStore_SaveErr(t *testing.T) {
	m := NewMemoryStore()
	m.SaveErr = errors.SettingsSaveFailed("memory", os.ErrPermission)
	if err := m.Save(saved); err == nil {
		t.Error("expected SaveErr to be returned")
	}
	if m.Saves != 0 {
		t.Errorf("Saves = %d, want 0", m.Saves)
	}
}

func TestNormalize(t *testing.T) {
	if got := (Settings{Model: "  "}).Normalize().Model; got != DefaultModel {
		t.Errorf("Normalize model = %q, want %q", got, DefaultModel)
	}
}

func TestModelDisplayName(t *testing.T) {
	for _, m := range KnownModels {
		if ModelDisplayName(m) == m {
			t.Errorf("no display name for %q", m)
		}
	}
	if ModelDisplayName("custom") != "custom" {
		t.Error("unknown models should display as-is")
	}
}
