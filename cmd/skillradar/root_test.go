package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/skillradar/internal/config"
	"github.com/amishk599/skillradar/internal/dataset"
	"github.com/amishk599/skillradar/internal/store"
)

func TestMissingDataHint(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = "data"
	cfg.Data.DBPath = "skillradar.db"

	hint, ok := missingDataHint(fmt.Errorf("%w: data/vacancies_with_skills.csv", dataset.ErrNoDataset), cfg)
	require.True(t, ok)
	assert.Contains(t, hint, "No dataset in data")

	hint, ok = missingDataHint(store.ErrNothingCollected, cfg)
	require.True(t, ok)
	assert.Contains(t, hint, "Nothing collected yet in skillradar.db")

	_, ok = missingDataHint(errors.New("disk on fire"), cfg)
	assert.False(t, ok)
	_, ok = missingDataHint(nil, cfg)
	assert.False(t, ok)
}

func TestLoadDataset_EmptyStore(t *testing.T) {
	cfg := config.Default()
	cfg.Data.DBPath = filepath.Join(t.TempDir(), "skillradar.db")

	from = "store"
	t.Cleanup(func() { from = "" })

	_, source, err := loadDataset(t.Context(), cfg, silentLogger())
	assert.ErrorIs(t, err, store.ErrNothingCollected)
	assert.Equal(t, cfg.Data.DBPath, source)
}
