package filter

import (
	"strings"

	"github.com/amishk599/skillradar/internal/model"
)

// TitleFilter matches vacancies whose title contains any of the include
// keywords and none of the exclude keywords.
// Matching is case-insensitive. An empty include list is treated as "match all".
type TitleFilter struct {
	include []string
	exclude []string
}

// NewTitleFilter returns a filter over vacancy titles (case-insensitive substring).
func NewTitleFilter(include, exclude []string) *TitleFilter {
	return &TitleFilter{
		include: lower(include),
		exclude: lower(exclude),
	}
}

// Match returns true if the title contains any include keyword and no
// exclude keyword.
func (f *TitleFilter) Match(v model.Vacancy) bool {
	title := strings.ToLower(v.Title)

	for _, kw := range f.exclude {
		if strings.Contains(title, kw) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, kw := range f.include {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

func lower(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
