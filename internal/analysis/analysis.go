// Package analysis turns a dataset into the figures the report shows.
package analysis

import (
	"github.com/amishk599/skillradar/internal/cooccur"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/stats"
)

// Options holds the selection sizes of each section.
type Options struct {
	TopSkills     int
	HeatmapSkills int
	NetworkSkills int
}

// DefaultOptions are the default section sizes.
var DefaultOptions = Options{TopSkills: 15, HeatmapSkills: 10, NetworkSkills: 8}

// Report is the complete analysis of one dataset.
type Report struct {
	Total          int                    `json:"total"`
	WithSkills     int                    `json:"with_skills"`
	WithoutSkills  int                    `json:"without_skills"`
	Errors         int                    `json:"errors"`
	DistinctSkills int                    `json:"distinct_skills"`
	TopSkills      []model.SkillFrequency `json:"top_skills"`
	Heatmap        cooccur.Matrix         `json:"heatmap"`
	Network        cooccur.Network        `json:"network"`
}

// Ranked returns the dataset's frequency table, recomputed from the
// with-skills records when the dataset carries none.
func Ranked(ds *model.Dataset) []model.SkillFrequency {
	if len(ds.Skills) > 0 {
		return ds.Skills
	}
	return stats.Frequencies(ds.WithSkills)
}

// Analyze computes every report section from ds.
func Analyze(ds *model.Dataset, opts Options) Report {
	ranked := Ranked(ds)

	return Report{
		Total:          ds.Total(),
		WithSkills:     len(ds.WithSkills),
		WithoutSkills:  len(ds.Empty),
		Errors:         len(ds.Errors),
		DistinctSkills: len(ranked),
		TopSkills:      cooccur.SelectTop(ranked, opts.TopSkills),
		Heatmap:        cooccur.BuildMatrix(ds.WithSkills, ranked, opts.HeatmapSkills),
		Network:        cooccur.BuildNetwork(ds.WithSkills, ranked, opts.NetworkSkills),
	}
}

// Share returns part/total as a fraction, 0 when total is 0.
func Share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
