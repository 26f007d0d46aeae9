package cooccur

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/amishk599/skillradar/internal/model"
)

// Index is an inverted index from each tracked skill to the positions of the
// records that mention it. A record is a member of a posting list at most
// once, however often it repeats the skill.
type Index struct {
	skills   []string
	postings []*roaring.Bitmap
}

// NewIndex builds postings for skills over records. Skills not mentioned by
// any record get an empty posting list. A skill listed twice shares one
// posting list.
func NewIndex(records []model.Vacancy, skills []string) *Index {
	ix := &Index{
		skills:   append([]string(nil), skills...),
		postings: make([]*roaring.Bitmap, len(skills)),
	}
	bySkill := make(map[string]*roaring.Bitmap, len(skills))
	for i, s := range skills {
		bm, ok := bySkill[s]
		if !ok {
			bm = roaring.New()
			bySkill[s] = bm
		}
		ix.postings[i] = bm
	}

	for pos, rec := range records {
		for _, s := range rec.Skills {
			if bm, ok := bySkill[s]; ok {
				bm.Add(uint32(pos))
			}
		}
	}
	return ix
}

// Len returns the number of tracked skills.
func (ix *Index) Len() int { return len(ix.skills) }

// Skill returns the i-th tracked skill.
func (ix *Index) Skill(i int) string { return ix.skills[i] }

// Count returns the number of records mentioning the i-th skill.
func (ix *Index) Count(i int) int {
	return int(ix.postings[i].GetCardinality())
}

// Pair returns the number of records mentioning both the i-th and j-th
// skill. Pair(i, i) == Count(i).
func (ix *Index) Pair(i, j int) int {
	if i == j {
		return ix.Count(i)
	}
	return int(ix.postings[i].AndCardinality(ix.postings[j]))
}
