package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/amishk599/skillradar/internal/listparse"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/stats"
)

// Write stores ds in dir under the plain (non-merged) file names. The skill
// table is recomputed from ds.WithSkills when ds.Skills is empty.
func Write(dir string, ds *model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset dir: %w", err)
	}

	withSkills := &table{header: []string{"id", "title", "skills", "skills_count"}}
	for _, v := range ds.WithSkills {
		withSkills.rows = append(withSkills.rows, map[string]string{
			"id":           v.ID,
			"title":        v.Title,
			"skills":       listparse.Format(v.Skills),
			"skills_count": strconv.Itoa(v.SkillsCount()),
		})
	}
	if err := writeTable(filepath.Join(dir, WithSkillsBase+".csv"), withSkills); err != nil {
		return err
	}

	empty := &table{header: []string{"id", "title", "reason"}}
	for _, v := range ds.Empty {
		empty.rows = append(empty.rows, map[string]string{"id": v.ID, "title": v.Title, "reason": v.Reason})
	}
	if err := writeTable(filepath.Join(dir, EmptyBase+".csv"), empty); err != nil {
		return err
	}

	errs := &table{header: []string{"id"}}
	for _, id := range ds.Errors {
		errs.rows = append(errs.rows, map[string]string{"id": id})
	}
	if err := writeTable(filepath.Join(dir, ErrorsBase+".csv"), errs); err != nil {
		return err
	}

	skills := ds.Skills
	if len(skills) == 0 {
		skills = stats.Frequencies(ds.WithSkills)
	}
	return writeSkillsFile(filepath.Join(dir, SkillsBase+".json"), skills)
}

func writeSkillsFile(path string, skills []model.SkillFrequency) error {
	if skills == nil {
		skills = []model.SkillFrequency{}
	}
	data, err := json.MarshalIndent(skills, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding skills: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
