package store

import (
	"time"

	"github.com/amishk599/skillradar/internal/model"
)

// NopStore is a no-op store used in dry-run mode. It never remembers
// vacancies, so every listed id is fetched on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(id string) (bool, error)                      { return false, nil }
func (s *NopStore) SaveVacancy(runID string, v model.Vacancy) error      { return nil }
func (s *NopStore) SaveEmpty(runID string, v model.EmptyVacancy) error   { return nil }
func (s *NopStore) SaveFiltered(runID string, v model.Vacancy) error     { return nil }
func (s *NopStore) SaveError(runID string, id string, cause error) error { return nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error                { return nil }
func (s *NopStore) IsEmpty() (bool, error)                               { return true, nil }
func (s *NopStore) Dataset() (*model.Dataset, error) {
	return &model.Dataset{
		WithSkills: []model.Vacancy{},
		Empty:      []model.EmptyVacancy{},
		Errors:     []string{},
		Skills:     []model.SkillFrequency{},
	}, nil
}
