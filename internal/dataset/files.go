// Package dataset reads, writes and merges the vacancy dataset files:
//
//	vacancies_with_skills.csv  id,title,skills,skills_count
//	vacancies_empty.csv        id,title,reason
//	error_vacancies.csv        id
//	skills_data.json           [{"skill": ..., "count": ...}]
//
// Each file may also exist as a "_merged" variant produced by Merge, which
// readers prefer.
package dataset

import (
	"errors"
	"os"
	"path/filepath"
)

// Base names of the dataset files.
const (
	WithSkillsBase = "vacancies_with_skills"
	EmptyBase      = "vacancies_empty"
	ErrorsBase     = "error_vacancies"
	SkillsBase     = "skills_data"

	mergedSuffix = "_merged"
)

// ErrNoDataset is returned when the primary vacancies file is missing.
var ErrNoDataset = errors.New("no vacancies dataset found")

// resolve returns the merged variant of base.ext in dir if it exists, else
// the plain file. ok is false when neither exists.
func resolve(dir, base, ext string) (path string, ok bool) {
	for _, name := range []string{base + mergedSuffix + ext, base + ext} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return filepath.Join(dir, base+ext), false
}
