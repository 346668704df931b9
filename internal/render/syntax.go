package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colors source lines with chroma. Lexers are resolved per
// file path and cached; paths with no matching lexer stay plain.
type Highlighter struct {
	style  string
	lexers map[string]chroma.Lexer
}

func NewHighlighter(style string) *Highlighter {
	return &Highlighter{style: style, lexers: map[string]chroma.Lexer{}}
}

// Line returns content with terminal escape codes for the lexer matched
// to path. On any failure the line comes back unchanged.
func (h *Highlighter) Line(path, content string) string {
	if h == nil || content == "" {
		return content
	}
	lex := h.lexerFor(path)
	if lex == nil {
		return content
	}
	style := styles.Get(h.style)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, content)
	if err != nil {
		return content
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return content
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	if lex, ok := h.lexers[path]; ok {
		return lex
	}
	lex := lexers.Match(filepath.Base(path))
	if lex != nil {
		lex = chroma.Coalesce(lex)
	}
	h.lexers[path] = lex
	return lex
}
