package bridge

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
		first   string
	}{
		{"none type", "TypeError: 'NoneType' object is not callable", 2, "Check that the document/component is not null before accessing"},
		{"attribute", "AttributeError: 'Sketch' has no attribute 'foo'", 2, "Review the host API documentation for correct method names"},
		{"both", FixtureError, 4, "Check that the document/component is not null before accessing"},
		{"unknown", "ZeroDivisionError: division by zero", 1, "Review the full error stack trace for details"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.message)
			if len(got) != tt.want {
				t.Fatalf("Suggest() returned %d suggestions, want %d: %v", len(got), tt.want, got)
			}
			if got[0] != tt.first {
				t.Errorf("first suggestion = %q, want %q", got[0], tt.first)
			}
		})
	}
}

func TestDiagnose_Summary(t *testing.T) {
	tests := []struct {
		message string
		prefix  string
		known   bool
	}{
		{FixtureError, "Likely accessing a null", true},
		{"AttributeError: x", "API attribute or method", true},
		{"TypeError: bad", "Wrong argument type", true},
		{strings.Repeat("x", 150), "Error: ", false},
	}
	for _, tt := range tests {
		d := Diagnose(tt.message)
		if !strings.HasPrefix(d.Summary, tt.prefix) {
			t.Errorf("Diagnose(%.20q).Summary = %q, want prefix %q", tt.message, d.Summary, tt.prefix)
		}
		if d.Known != tt.known {
			t.Errorf("Diagnose(%.20q).Known = %v, want %v", tt.message, d.Known, tt.known)
		}
		if len(d.Summary) > 110 {
			t.Errorf("summary not truncated: %d chars", len(d.Summary))
		}
	}
}

func TestDiagnose_TruncatesWholeCharacters(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short message kept", "ZeroDivisionError: division by zero", "Error: ZeroDivisionError: division by zero"},
		{"multi-byte runes", strings.Repeat("é", 120), "Error: " + strings.Repeat("é", 100)},
		{"wide runes", strings.Repeat("寸法", 60), "Error: " + strings.Repeat("寸法", 50)},
		{"combining marks stay attached", strings.Repeat("e\u0301", 101), "Error: " + strings.Repeat("e\u0301", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diagnose(tt.message)
			if d.Summary != tt.want {
				t.Errorf("Summary = %q, want %q", d.Summary, tt.want)
			}
			if !utf8.ValidString(d.Summary) {
				t.Errorf("Summary is not valid UTF-8: %q", d.Summary)
			}
		})
	}
}

func TestWithSuggestions(t *testing.T) {
	ok := ExecutionResult{Success: true, Output: []string{"done"}}
	if got := WithSuggestions(ok); got.Suggestions != nil {
		t.Error("successful results should not gain suggestions")
	}

	given := Failed(ErrorReport{Message: "TypeError", Suggestions: []string{"custom"}})
	if got := WithSuggestions(given); len(got.Suggestions) != 1 || got.Suggestions[0] != "custom" {
		t.Errorf("existing suggestions replaced: %v", got.Suggestions)
	}

	bare := Failed(ErrorReport{Message: "AttributeError: nope"})
	if got := WithSuggestions(bare); len(got.Suggestions) != 2 {
		t.Errorf("expected diagnostics to fill suggestions, got %v", got.Suggestions)
	}
}
