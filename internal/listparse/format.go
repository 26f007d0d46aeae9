package listparse

import "strings"

// Format renders tokens as a list literal, ['A', 'B'], the form Parse reads
// back. When any token contains a single quote every token is wrapped in
// double quotes instead, so the whole literal stays valid JSON.
func Format(tokens []string) string {
	q := byte('\'')
	for _, t := range tokens {
		if strings.ContainsRune(t, '\'') {
			q = '"'
			break
		}
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(", ")
		}
		quote(&b, t, q)
	}
	b.WriteByte(']')
	return b.String()
}

func quote(b *strings.Builder, s string, q byte) {
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == q {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
}
