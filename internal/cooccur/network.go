package cooccur

import "github.com/amishk599/skillradar/internal/model"

// Edge links two distinct skills that appear together in Count records.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Count  int    `json:"value"`
}

// Node is a skill in the network, sized by its ranked frequency.
type Node struct {
	Skill string `json:"id"`
	Count int    `json:"count"`
}

// Network is the node set and edge list of the skill graph.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"links"`
}

// BuildEdges returns an edge for every unordered pair of distinct skills
// among the topM most frequent that co-occur in at least one record. Edges
// are ordered by (i, j) with i < j over the selection order.
func BuildEdges(records []model.Vacancy, ranked []model.SkillFrequency, topM int) []Edge {
	labels := skillNames(SelectTop(ranked, topM))
	return buildEdges(records, labels)
}

func buildEdges(records []model.Vacancy, labels []string) []Edge {
	edges := []Edge{}
	if len(labels) < 2 || len(records) == 0 {
		return edges
	}
	ix := NewIndex(records, labels)
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i] == labels[j] {
				continue
			}
			if c := ix.Pair(i, j); c > 0 {
				edges = append(edges, Edge{Source: labels[i], Target: labels[j], Count: c})
			}
		}
	}
	return edges
}

// BuildNetwork returns the topM most frequent skills as nodes, carrying their
// ranked counts, together with BuildEdges over the same selection.
func BuildNetwork(records []model.Vacancy, ranked []model.SkillFrequency, topM int) Network {
	top := SelectTop(ranked, topM)
	nodes := make([]Node, len(top))
	for i, f := range top {
		nodes[i] = Node{Skill: f.Skill, Count: f.Count}
	}
	return Network{
		Nodes: nodes,
		Edges: buildEdges(records, skillNames(top)),
	}
}
