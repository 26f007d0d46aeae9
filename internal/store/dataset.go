package store

import (
	"errors"

	"github.com/amishk599/skillradar/internal/model"
)

// ErrNothingCollected is returned by ReadDataset when the store holds no
// collected vacancies.
var ErrNothingCollected = errors.New("nothing collected yet")

type datasetSource interface {
	IsEmpty() (bool, error)
	Dataset() (*model.Dataset, error)
}

// ReadDataset rebuilds the dataset from s, failing with ErrNothingCollected
// when no collection run has stored anything.
func ReadDataset(s datasetSource) (*model.Dataset, error) {
	empty, err := s.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, ErrNothingCollected
	}
	return s.Dataset()
}
