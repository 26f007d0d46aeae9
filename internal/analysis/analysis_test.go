package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/skillradar/internal/model"
)

func sampleDataset() *model.Dataset {
	return &model.Dataset{
		WithSkills: []model.Vacancy{
			{ID: "1", Skills: []string{"A", "B"}},
			{ID: "2", Skills: []string{"A", "C"}},
			{ID: "3", Skills: []string{"A", "B", "C"}},
		},
		Empty:  []model.EmptyVacancy{{ID: "4", Reason: model.ReasonNoSkills}},
		Errors: []string{"5", "6"},
		Skills: []model.SkillFrequency{{Skill: "A", Count: 3}, {Skill: "B", Count: 2}, {Skill: "C", Count: 2}},
	}
}

func TestAnalyze_Totals(t *testing.T) {
	r := Analyze(sampleDataset(), DefaultOptions)

	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 3, r.WithSkills)
	assert.Equal(t, 1, r.WithoutSkills)
	assert.Equal(t, 2, r.Errors)
	assert.Equal(t, 3, r.DistinctSkills)
}

func TestAnalyze_Sections(t *testing.T) {
	r := Analyze(sampleDataset(), Options{TopSkills: 2, HeatmapSkills: 3, NetworkSkills: 3})

	require.Len(t, r.TopSkills, 2)
	assert.Equal(t, "A", r.TopSkills[0].Skill)
	assert.Equal(t, "B", r.TopSkills[1].Skill)

	assert.Equal(t, []string{"A", "B", "C"}, r.Heatmap.Labels)
	assert.Equal(t, [][]int{{3, 2, 2}, {2, 2, 1}, {2, 1, 2}}, r.Heatmap.Cells)

	require.Len(t, r.Network.Nodes, 3)
	require.Len(t, r.Network.Edges, 3)
	assert.Equal(t, "A", r.Network.Edges[0].Source)
	assert.Equal(t, "B", r.Network.Edges[0].Target)
	assert.Equal(t, 2, r.Network.Edges[0].Count)
}

func TestAnalyze_RecomputesMissingFrequencyTable(t *testing.T) {
	ds := sampleDataset()
	ds.Skills = nil

	r := Analyze(ds, DefaultOptions)
	require.NotEmpty(t, r.TopSkills)
	assert.Equal(t, model.SkillFrequency{Skill: "A", Count: 3}, r.TopSkills[0])
}

func TestAnalyze_EmptyDataset(t *testing.T) {
	r := Analyze(&model.Dataset{}, DefaultOptions)

	assert.Zero(t, r.Total)
	assert.Empty(t, r.TopSkills)
	assert.Equal(t, DefaultOptions.HeatmapSkills, r.Heatmap.Size())
	assert.Zero(t, r.Heatmap.Max())
	assert.Empty(t, r.Network.Edges)
}

func TestReport_JSONShape(t *testing.T) {
	data, err := json.Marshal(Analyze(sampleDataset(), DefaultOptions))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	for _, key := range []string{"total", "with_skills", "without_skills", "errors", "top_skills", "heatmap", "network"} {
		assert.Contains(t, out, key)
	}
	network := out["network"].(map[string]any)
	assert.Contains(t, network, "nodes")
	assert.Contains(t, network, "links")
}

func TestShare(t *testing.T) {
	assert.Equal(t, 0.0, Share(1, 0))
	assert.InDelta(t, 0.75, Share(3, 4), 1e-9)
}
