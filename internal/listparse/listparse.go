// Package listparse reads the list literals that dataset files use for
// multi-valued columns, e.g. ['Python', 'SQL'].
//
// Parsing is best effort: malformed input is logged and yields an empty
// list, never an error.
package listparse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// sentinels are textual stand-ins for "no value" written by dataframe
// exporters.
var sentinels = map[string]bool{
	"[]":   true,
	"None": true,
	"null": true,
	"NaN":  true,
	"nan":  true,
}

var (
	outerBrackets = regexp.MustCompile(`^\[|\]$`)
	spaceAtComma  = regexp.MustCompile(`\s*,\s*`)
	spaceAtQuote  = regexp.MustCompile(`\s*"\s*`)
)

// Parser parses list literals and reports malformed input to its logger.
type Parser struct {
	logger *slog.Logger
}

// New returns a Parser that logs diagnostics to logger. A nil logger uses
// slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse converts raw into a list of tokens using slog.Default() for
// diagnostics.
func Parse(raw any) []string {
	return New(nil).Parse(raw)
}

// Parse converts raw into a list of trimmed, non-empty tokens.
//
// raw may be nil, a string, a []byte, a fmt.Stringer, or an already parsed
// []string / []any. A []string is returned unchanged. Anything that cannot
// be read is logged and mapped to an empty list.
func (p *Parser) Parse(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		return p.fromValues(v)
	case string:
		return p.parseText(v)
	case []byte:
		return p.parseText(string(v))
	case fmt.Stringer:
		return p.parseText(v.String())
	default:
		p.logger.Warn("unsupported list value", "type", fmt.Sprintf("%T", raw))
		return []string{}
	}
}

func (p *Parser) fromValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			p.logger.Warn("dropping non-text list element", "value", v)
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *Parser) parseText(raw string) []string {
	text := strings.TrimSpace(raw)
	if text == "" || sentinels[text] {
		return []string{}
	}

	// A well-formed JSON array needs no repair, and keeps apostrophes
	// inside double-quoted tokens intact.
	var tokens []string
	if err := json.Unmarshal([]byte(text), &tokens); err == nil {
		return clean(tokens)
	}

	cleaned := normalize(text)
	if cleaned == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte("["+cleaned+"]"), &tokens); err != nil {
		p.logger.Warn("failed to parse list literal", "raw", raw, "error", err)
		return []string{}
	}
	return clean(tokens)
}

// normalize strips the brackets, unifies quoting on '"', collapses escaped
// and doubled quotes, and drops whitespace next to commas and quotes.
func normalize(text string) string {
	s := outerBrackets.ReplaceAllString(text, "")
	s = strings.ReplaceAll(s, `'`, `"`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `""`, `"`)
	s = spaceAtComma.ReplaceAllString(s, ",")
	s = spaceAtQuote.ReplaceAllString(s, `"`)
	return s
}

func clean(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
