// Package collector runs one collection pass against a vacancy source:
// list ids → skip known → fetch → filter → classify → persist → notify.
package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amishk599/skillradar/internal/model"
)

// Collector owns the full collection pipeline for one source.
type Collector struct {
	source   model.VacancySource
	filter   model.VacancyFilter
	store    model.VacancyStore
	notifier model.Notifier
	pages    int
	logger   *slog.Logger
	newRunID func() string
}

// New creates a collector wired with all its dependencies. pages is the
// number of listing pages requested per run.
func New(
	source model.VacancySource,
	filter model.VacancyFilter,
	store model.VacancyStore,
	notifier model.Notifier,
	pages int,
	logger *slog.Logger,
) *Collector {
	return &Collector{
		source:   source,
		filter:   filter,
		store:    store,
		notifier: notifier,
		pages:    pages,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Collect runs one pass. Per-vacancy fetch failures are recorded in the
// summary, not returned; only store failures and cancellation abort the run.
func (c *Collector) Collect(ctx context.Context) (*model.CollectSummary, error) {
	summary := &model.CollectSummary{
		RunID:      c.newRunID(),
		WithSkills: []model.Vacancy{},
		Empty:      []model.EmptyVacancy{},
		Errors:     []string{},
	}
	log := c.logger.With("run_id", summary.RunID)

	ids, err := c.listAll(ctx, log)
	if err != nil {
		return nil, err
	}
	summary.Listed = len(ids)

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collecting: %w", err)
		}

		seen, err := c.store.HasSeen(id)
		if err != nil {
			return nil, fmt.Errorf("collecting: checking seen status: %w", err)
		}
		if seen {
			summary.Skipped++
			continue
		}

		v, err := c.source.FetchVacancy(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("collecting: %w", ctx.Err())
			}
			log.Warn("fetching vacancy failed", "id", id, "error", err)
			summary.Errors = append(summary.Errors, id)
			if err := c.store.SaveError(summary.RunID, id, err); err != nil {
				return nil, fmt.Errorf("collecting: %w", err)
			}
			continue
		}

		if !c.filter.Match(v) {
			summary.Filtered++
			if err := c.store.SaveFiltered(summary.RunID, v); err != nil {
				return nil, fmt.Errorf("collecting: %w", err)
			}
			continue
		}

		if v.SkillsCount() == 0 {
			empty := model.EmptyVacancy{ID: v.ID, Title: v.Title, Reason: model.ReasonNoSkills}
			summary.Empty = append(summary.Empty, empty)
			if err := c.store.SaveEmpty(summary.RunID, empty); err != nil {
				return nil, fmt.Errorf("collecting: %w", err)
			}
		} else {
			summary.WithSkills = append(summary.WithSkills, v)
			if err := c.store.SaveVacancy(summary.RunID, v); err != nil {
				return nil, fmt.Errorf("collecting: %w", err)
			}
		}

		log.Debug("processed vacancy", "n", i+1, "of", len(ids), "id", id, "skills", v.SkillsCount())
	}

	if err := c.notifier.Notify(*summary); err != nil {
		return nil, fmt.Errorf("collecting: notifying: %w", err)
	}
	return summary, nil
}

// listAll gathers ids page by page. A failed or empty page ends
// pagination; ids listed on several pages are kept once.
func (c *Collector) listAll(ctx context.Context, log *slog.Logger) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)

	for page := 0; page < c.pages; page++ {
		pageIDs, err := c.source.ListVacancyIDs(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("listing vacancies: %w", ctx.Err())
			}
			log.Warn("listing page failed, stopping pagination", "page", page, "error", err)
			break
		}
		if len(pageIDs) == 0 {
			break
		}
		for _, id := range pageIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		log.Info("listed page", "page", page, "ids", len(pageIDs))
	}

	return ids, nil
}
