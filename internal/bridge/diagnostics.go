package bridge

import (
	"strings"

	"github.com/rivo/uniseg"
)

// summaryLimit caps how much of an unrecognized message a summary repeats,
// in grapheme clusters.
const summaryLimit = 100

// Diagnosis is a short explanation of an execution error plus likely fixes.
type Diagnosis struct {
	Summary     string
	Suggestions []string
	// Known is set when the message matched a common host error pattern.
	// Otherwise Summary only repeats the start of the message.
	Known bool
}

// Diagnose matches common host error patterns.
func Diagnose(message string) Diagnosis {
	summary, known := summarize(message)
	return Diagnosis{Summary: summary, Suggestions: Suggest(message), Known: known}
}

func summarize(message string) (string, bool) {
	switch {
	case strings.Contains(message, "NoneType"):
		return "Likely accessing a null/None object. Check document/component existence.", true
	case strings.Contains(message, "AttributeError"):
		return "API attribute or method doesn't exist. Check the host API documentation.", true
	case strings.Contains(message, "TypeError"):
		return "Wrong argument type passed to API. Check parameter types.", true
	}
	return "Error: " + truncateClusters(message, summaryLimit), false
}

// truncateClusters keeps the first n grapheme clusters of s.
func truncateClusters(s string, n int) string {
	rest, state := s, -1
	for i := 0; i < n && rest != ""; i++ {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	return s[:len(s)-len(rest)]
}

// Suggest returns fix suggestions for an error message. It never returns an
// empty list.
func Suggest(message string) []string {
	var fixes []string
	if strings.Contains(message, "NoneType") {
		fixes = append(fixes,
			"Check that the document/component is not null before accessing",
			"Add null checks: if obj is not None:")
	}
	if strings.Contains(message, "AttributeError") {
		fixes = append(fixes,
			"Review the host API documentation for correct method names",
			"Ensure you're calling methods on the correct object type")
	}
	if len(fixes) == 0 {
		fixes = append(fixes, "Review the full error stack trace for details")
	}
	return fixes
}

// WithSuggestions fills in diagnostics for a failed result that arrived
// without any.
func WithSuggestions(r ExecutionResult) ExecutionResult {
	if r.Success || len(r.Suggestions) > 0 {
		return r
	}
	r.Suggestions = Suggest(r.Error)
	return r
}
