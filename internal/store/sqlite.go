package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/stats"
)

// Row statuses.
const (
	StatusWithSkills = "with_skills"
	StatusEmpty      = "empty"
	StatusError      = "error"
	// StatusFiltered marks a vacancy rejected by the title filter. It counts
	// as seen but is left out of the dataset.
	StatusFiltered = "filtered"
)

// SQLiteStore records collected vacancies in a SQLite database so reruns
// skip what is already known and the dataset can be rebuilt at any time.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// vacancies table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS vacancies (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		skills       TEXT NOT NULL DEFAULT '[]',
		status       TEXT NOT NULL,
		reason       TEXT NOT NULL DEFAULT '',
		run_id       TEXT NOT NULL DEFAULT '',
		collected_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vacancies table: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// HasSeen returns true if the vacancy was collected by an earlier run.
// Vacancies that failed to fetch do not count, so they are retried.
func (s *SQLiteStore) HasSeen(id string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM vacancies WHERE id = ? AND status != ?", id, StatusError).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", id, err)
	}
	return true, nil
}

// SaveVacancy records a vacancy that lists key skills.
func (s *SQLiteStore) SaveVacancy(runID string, v model.Vacancy) error {
	skills, err := json.Marshal(nonNil(v.Skills))
	if err != nil {
		return fmt.Errorf("encoding skills of %s: %w", v.ID, err)
	}
	collected := v.CollectedAt
	if collected.IsZero() {
		collected = s.now()
	}
	return s.upsert(v.ID, v.Title, string(skills), StatusWithSkills, "", runID, collected)
}

// SaveEmpty records a vacancy without key skills.
func (s *SQLiteStore) SaveEmpty(runID string, v model.EmptyVacancy) error {
	return s.upsert(v.ID, v.Title, "[]", StatusEmpty, v.Reason, runID, s.now())
}

// SaveFiltered records a vacancy rejected by the title filter so later runs
// do not fetch it again.
func (s *SQLiteStore) SaveFiltered(runID string, v model.Vacancy) error {
	return s.upsert(v.ID, v.Title, "[]", StatusFiltered, "", runID, s.now())
}

// SaveError records a vacancy id that could not be fetched.
func (s *SQLiteStore) SaveError(runID string, id string, cause error) error {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return s.upsert(id, "", "[]", StatusError, reason, runID, s.now())
}

func (s *SQLiteStore) upsert(id, title, skills, status, reason, runID string, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO vacancies (id, title, skills, status, reason, run_id, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			skills = excluded.skills,
			status = excluded.status,
			reason = excluded.reason,
			run_id = excluded.run_id,
			collected_at = excluded.collected_at`,
		id, title, skills, status, reason, runID, at.Unix())
	if err != nil {
		return fmt.Errorf("saving vacancy %s: %w", id, err)
	}
	return nil
}

// Dataset returns everything collected so far, in collection order, with
// the skill frequency table computed from the with-skills rows.
func (s *SQLiteStore) Dataset() (*model.Dataset, error) {
	rows, err := s.db.Query(`SELECT id, title, skills, status, reason, collected_at
		FROM vacancies ORDER BY collected_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying vacancies: %w", err)
	}
	defer rows.Close()

	ds := &model.Dataset{
		WithSkills: []model.Vacancy{},
		Empty:      []model.EmptyVacancy{},
		Errors:     []string{},
	}
	for rows.Next() {
		var (
			id, title, skillsJSON, status, reason string
			collectedAt                           int64
		)
		if err := rows.Scan(&id, &title, &skillsJSON, &status, &reason, &collectedAt); err != nil {
			return nil, fmt.Errorf("scanning vacancy row: %w", err)
		}

		switch status {
		case StatusWithSkills:
			var skills []string
			if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
				return nil, fmt.Errorf("decoding skills of %s: %w", id, err)
			}
			ds.WithSkills = append(ds.WithSkills, model.Vacancy{
				ID:          id,
				Title:       title,
				Skills:      nonNil(skills),
				CollectedAt: time.Unix(collectedAt, 0).UTC(),
			})
		case StatusEmpty:
			ds.Empty = append(ds.Empty, model.EmptyVacancy{ID: id, Title: title, Reason: reason})
		case StatusError:
			ds.Errors = append(ds.Errors, id)
		case StatusFiltered:
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vacancy rows: %w", err)
	}

	ds.Skills = stats.Frequencies(ds.WithSkills)
	return ds, nil
}

// Cleanup deletes vacancies collected longer ago than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := s.now().Add(-olderThan).Unix()
	_, err := s.db.Exec("DELETE FROM vacancies WHERE collected_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up vacancies older than %v: %w", olderThan, err)
	}
	return nil
}

// IsEmpty returns true if nothing has been collected yet. Filtered rows do
// not count since they never reach the dataset.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM vacancies WHERE status != ?", StatusFiltered).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nonNil(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
