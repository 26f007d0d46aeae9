package cooccur

import "github.com/amishk599/skillradar/internal/model"

// Matrix holds pairwise co-occurrence counts. Cells[i][j] is the number of
// records mentioning both Labels[i] and Labels[j]; the diagonal is the number
// of records mentioning the skill at all.
type Matrix struct {
	Labels []string `json:"labels"`
	Cells  [][]int  `json:"cells"`
}

// Size returns the matrix dimension.
func (m Matrix) Size() int { return len(m.Labels) }

// Max returns the largest cell value, 0 for an empty matrix.
func (m Matrix) Max() int {
	hi := 0
	for _, row := range m.Cells {
		for _, v := range row {
			if v > hi {
				hi = v
			}
		}
	}
	return hi
}

// BuildMatrix counts co-occurrences among the topN most frequent skills of
// ranked. The result is symmetric and always topN×topN: when ranked holds
// fewer than topN skills the trailing rows and columns are zero with empty
// labels, and it is all zeros when records is empty.
func BuildMatrix(records []model.Vacancy, ranked []model.SkillFrequency, topN int) Matrix {
	size := max(topN, 0)
	skills := skillNames(SelectTop(ranked, size))

	labels := make([]string, size)
	copy(labels, skills)
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}
	if len(skills) == 0 || len(records) == 0 {
		return Matrix{Labels: labels, Cells: cells}
	}

	ix := NewIndex(records, skills)
	for i := range skills {
		for j := i; j < len(skills); j++ {
			c := ix.Pair(i, j)
			cells[i][j] = c
			cells[j][i] = c
		}
	}
	return Matrix{Labels: labels, Cells: cells}
}
