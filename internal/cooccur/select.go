// Package cooccur counts how often the most demanded skills appear together
// in the same vacancy.
//
// Every function is pure: inputs are never modified or retained, so callers
// may share them across goroutines.
package cooccur

import (
	"sort"

	"github.com/amishk599/skillradar/internal/model"
)

// SelectTop returns the first n entries of ranked ordered by descending
// count. Ties keep their input order. ranked is not modified.
func SelectTop(ranked []model.SkillFrequency, n int) []model.SkillFrequency {
	if n <= 0 || len(ranked) == 0 {
		return []model.SkillFrequency{}
	}
	sorted := make([]model.SkillFrequency, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func skillNames(freqs []model.SkillFrequency) []string {
	names := make([]string, len(freqs))
	for i, f := range freqs {
		names[i] = f.Skill
	}
	return names
}
