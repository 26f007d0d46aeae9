// Package stats derives skill frequency tables from vacancies.
package stats

import (
	"sort"

	"github.com/amishk599/skillradar/internal/model"
)

// Frequencies counts every skill mention across vacancies. The result is
// ordered by descending count; equal counts keep first-seen order.
func Frequencies(vacancies []model.Vacancy) []model.SkillFrequency {
	index := make(map[string]int)
	var freqs []model.SkillFrequency
	for _, v := range vacancies {
		for _, s := range v.Skills {
			i, ok := index[s]
			if !ok {
				i = len(freqs)
				index[s] = i
				freqs = append(freqs, model.SkillFrequency{Skill: s})
			}
			freqs[i].Count++
		}
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Count > freqs[j].Count
	})
	if freqs == nil {
		return []model.SkillFrequency{}
	}
	return freqs
}

// Sum adds up counts per skill across several tables and returns one entry
// per skill sorted by skill name.
func Sum(tables ...[]model.SkillFrequency) []model.SkillFrequency {
	totals := make(map[string]int)
	for _, t := range tables {
		for _, f := range t {
			totals[f.Skill] += f.Count
		}
	}
	out := make([]model.SkillFrequency, 0, len(totals))
	for skill, count := range totals {
		out = append(out, model.SkillFrequency{Skill: skill, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out
}
