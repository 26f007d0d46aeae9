package model

import (
	"context"
	"time"
)

// Vacancy is one collected job vacancy with the key skills it lists.
type Vacancy struct {
	ID          string    // source vacancy id
	Title       string    // vacancy name
	Skills      []string  // key skills, in source order
	CollectedAt time.Time // our clock (zero when read back from a dataset file)
}

// SkillsCount returns the number of skills listed by the vacancy.
func (v Vacancy) SkillsCount() int { return len(v.Skills) }

// EmptyVacancy is a vacancy that lists no key skills.
type EmptyVacancy struct {
	ID     string
	Title  string
	Reason string
}

// ReasonNoSkills is recorded for vacancies without key skills.
const ReasonNoSkills = "No skills listed"

// SkillFrequency pairs a skill with the number of times it is mentioned.
type SkillFrequency struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Dataset is everything one analysis pass consumes.
type Dataset struct {
	WithSkills []Vacancy
	Empty      []EmptyVacancy
	Errors     []string         // vacancy ids that could not be fetched
	Skills     []SkillFrequency // ranked frequency table, may be empty
}

// Total returns the number of vacancies with and without skills.
func (d *Dataset) Total() int {
	return len(d.WithSkills) + len(d.Empty)
}

// CollectSummary reports the outcome of one collection run.
type CollectSummary struct {
	RunID      string
	Listed     int // ids returned by the listing endpoint
	Skipped    int // ids already collected by an earlier run
	Filtered   int // rejected by the title filter
	WithSkills []Vacancy
	Empty      []EmptyVacancy
	Errors     []string
}

// VacancySource lists and fetches vacancies from a job board.
type VacancySource interface {
	ListVacancyIDs(ctx context.Context, page int) ([]string, error)
	FetchVacancy(ctx context.Context, id string) (Vacancy, error)
}

// VacancyStore records collected vacancies so reruns skip them.
type VacancyStore interface {
	HasSeen(id string) (bool, error)
	SaveVacancy(runID string, v Vacancy) error
	SaveEmpty(runID string, v EmptyVacancy) error
	SaveFiltered(runID string, v Vacancy) error
	SaveError(runID string, id string, cause error) error
	Dataset() (*Dataset, error)
	Cleanup(olderThan time.Duration) error
}

// Notifier reports the outcome of a collection run.
type Notifier interface {
	Notify(summary CollectSummary) error
}

// VacancyFilter decides whether a vacancy belongs in the dataset.
type VacancyFilter interface {
	Match(v Vacancy) bool
}
