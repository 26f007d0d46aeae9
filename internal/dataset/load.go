package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/skillradar/internal/listparse"
	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/stats"
)

// Reader loads a dataset from a directory.
type Reader struct {
	dir    string
	parser *listparse.Parser
	logger *slog.Logger
}

// NewReader returns a Reader for the dataset files in dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{
		dir:    dir,
		parser: listparse.New(logger),
		logger: logger,
	}
}

// Load reads the vacancies, empty vacancies, error ids and skill frequencies
// concurrently. Only the vacancies file is required; when the frequency file
// is missing the table is computed from the vacancies.
func (r *Reader) Load(ctx context.Context) (*model.Dataset, error) {
	var ds model.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vs, err := r.readWithSkills()
		if err != nil {
			return err
		}
		ds.WithSkills = vs
		return ctx.Err()
	})
	g.Go(func() error {
		empty, err := r.readEmpty()
		if err != nil {
			return err
		}
		ds.Empty = empty
		return ctx.Err()
	})
	g.Go(func() error {
		ids, err := r.readErrors()
		if err != nil {
			return err
		}
		ds.Errors = ids
		return ctx.Err()
	})
	g.Go(func() error {
		skills, err := r.readSkills()
		if err != nil {
			return err
		}
		ds.Skills = skills
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ds.Skills == nil {
		r.logger.Debug("skills file missing, computing frequencies from vacancies")
		ds.Skills = stats.Frequencies(ds.WithSkills)
	}

	r.logger.Debug("dataset loaded",
		"dir", r.dir,
		"with_skills", len(ds.WithSkills),
		"empty", len(ds.Empty),
		"errors", len(ds.Errors),
		"skills", len(ds.Skills),
	)
	return &ds, nil
}

func (r *Reader) readWithSkills() ([]model.Vacancy, error) {
	path, ok := resolve(r.dir, WithSkillsBase, ".csv")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDataset, path)
	}
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	vs := make([]model.Vacancy, 0, len(t.rows))
	for _, row := range t.rows {
		vs = append(vs, model.Vacancy{
			ID:     row["id"],
			Title:  row["title"],
			Skills: r.parser.Parse(row["skills"]),
		})
	}
	return vs, nil
}

func (r *Reader) readEmpty() ([]model.EmptyVacancy, error) {
	path, ok := resolve(r.dir, EmptyBase, ".csv")
	if !ok {
		r.logger.Debug("no empty vacancies file", "path", path)
		return []model.EmptyVacancy{}, nil
	}
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.EmptyVacancy, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, model.EmptyVacancy{ID: row["id"], Title: row["title"], Reason: row["reason"]})
	}
	return out, nil
}

func (r *Reader) readErrors() ([]string, error) {
	path, ok := resolve(r.dir, ErrorsBase, ".csv")
	if !ok {
		return []string{}, nil
	}
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		ids = append(ids, row["id"])
	}
	return ids, nil
}

// readSkills returns nil without error when the file does not exist.
func (r *Reader) readSkills() ([]model.SkillFrequency, error) {
	path, ok := resolve(r.dir, SkillsBase, ".json")
	if !ok {
		return nil, nil
	}
	skills, err := readSkillsFile(path)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func readSkillsFile(path string) ([]model.SkillFrequency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	skills := []model.SkillFrequency{}
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return skills, nil
}

// IsMissing reports whether err means there is no dataset to load.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNoDataset)
}
