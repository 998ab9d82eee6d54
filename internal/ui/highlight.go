package ui

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// CodeLanguage is the lexer used for generated scripts.
const CodeLanguage = "python"

// codeStyle names the chroma style for the code section.
const codeStyle = "github-dark"

// lexers by language name; the panel re-highlights on every render.
var lexerCache sync.Map

func lexerFor(language string) chroma.Lexer {
	if l, ok := lexerCache.Load(language); ok {
		return l.(chroma.Lexer)
	}
	l := lexers.Get(language)
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	lexerCache.Store(language, l)
	return l
}

// highlightCode colors code for a 256-color terminal. Code chroma cannot
// tokenise comes back unchanged.
func highlightCode(code, language string) string {
	it, err := lexerFor(language).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var sb strings.Builder
	if err := formatters.TTY256.Format(&sb, styles.Get(codeStyle), it); err != nil {
		return code
	}
	return sb.String()
}
