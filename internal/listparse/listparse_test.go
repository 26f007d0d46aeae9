package listparse

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturingParser() (*Parser, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return New(logger), &buf
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single quoted", raw: "['Python', 'SQL']", want: []string{"Python", "SQL"}},
		{name: "punctuation inside tokens", raw: "['C++', 'C#']", want: []string{"C++", "C#"}},
		{name: "double quoted json", raw: `["Python", "SQL"]`, want: []string{"Python", "SQL"}},
		{name: "mixed quoting", raw: `['Python', "SQL"]`, want: []string{"Python", "SQL"}},
		{name: "escaped quotes", raw: `[\"Python\", \"SQL\"]`, want: []string{"Python", "SQL"}},
		{name: "doubled quotes", raw: `[""Python"", ""SQL""]`, want: []string{"Python", "SQL"}},
		{name: "whitespace around commas and quotes", raw: "[ ' Python ' ,   'SQL' ]", want: []string{"Python", "SQL"}},
		{name: "single element", raw: "['Excel']", want: []string{"Excel"}},
		{name: "cyrillic", raw: "['Работа в команде', 'Лабораторные исследования']", want: []string{"Работа в команде", "Лабораторные исследования"}},
		{name: "apostrophe in json token", raw: `["Driver's license"]`, want: []string{"Driver's license"}},
		{name: "duplicates kept", raw: "['SQL', 'SQL']", want: []string{"SQL", "SQL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, logs := newCapturingParser()
			assert.Equal(t, tt.want, p.Parse(tt.raw))
			assert.Empty(t, logs.String())
		})
	}
}

func TestParse_Sentinels(t *testing.T) {
	for _, raw := range []any{nil, "", "   ", "[]", " [] ", "None", "null", "NaN", "nan", "[ ]"} {
		p, logs := newCapturingParser()
		got := p.Parse(raw)
		require.NotNil(t, got, "raw=%q", raw)
		assert.Empty(t, got, "raw=%q", raw)
		assert.Empty(t, logs.String(), "raw=%q", raw)
	}
}

func TestParse_MalformedLogsAndReturnsEmpty(t *testing.T) {
	for _, raw := range []string{
		"not a list",
		"{'a': 1}",
		"['unterminated",
		"['It\\'s']",
		"[1, 2]",
	} {
		p, logs := newCapturingParser()
		got := p.Parse(raw)
		require.NotNil(t, got, "raw=%q", raw)
		assert.Empty(t, got, "raw=%q", raw)
		assert.Contains(t, logs.String(), "failed to parse list literal", "raw=%q", raw)
		assert.Contains(t, logs.String(), "level=WARN", "raw=%q", raw)
	}
}

func TestParse_PassThrough(t *testing.T) {
	p, _ := newCapturingParser()

	in := []string{"Go", "SQL"}
	assert.Equal(t, in, p.Parse(in))

	got := p.Parse([]any{"Go", 42, " SQL ", ""})
	assert.Equal(t, []string{"Go", "SQL"}, got)
}

func TestParse_Idempotent(t *testing.T) {
	p, _ := newCapturingParser()
	for _, raw := range []any{
		"['Python', 'SQL']",
		"[]",
		"None",
		"garbage",
		nil,
		[]string{"A"},
	} {
		once := p.Parse(raw)
		assert.Equal(t, once, p.Parse(once), "raw=%v", raw)
	}
}

func TestParse_ByteSliceAndStringer(t *testing.T) {
	p, _ := newCapturingParser()
	assert.Equal(t, []string{"A", "B"}, p.Parse([]byte("['A', 'B']")))

	var sb strings.Builder
	sb.WriteString("['A']")
	assert.Equal(t, []string{"A"}, p.Parse(&sb))
}

func TestParse_UnsupportedType(t *testing.T) {
	p, logs := newCapturingParser()
	got := p.Parse(12)
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "unsupported list value")
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{"[", "]", "[[", "'", `"`, `\`, "[''']", `["\"]`, "[,,]", "['a',]", "\x00", "['\u00e9']"}
	p, _ := newCapturingParser()
	for _, raw := range inputs {
		assert.NotPanics(t, func() { p.Parse(raw) }, "raw=%q", raw)
		assert.NotNil(t, p.Parse(raw), "raw=%q", raw)
	}
}

func TestParse_PackageLevel(t *testing.T) {
	assert.Equal(t, []string{"Python", "SQL"}, Parse("['Python', 'SQL']"))
}
