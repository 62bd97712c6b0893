package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/table"
)

// Error values for consistent error handling by callers.
var (
	ErrNotFound         = errors.New("dataset not found")
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrInvalidDatasetID = errors.New("invalid dataset id")
)

// Dataset is a registered reference frame.
type Dataset struct {
	ID          string
	Name        string
	Version     string
	Description string
	Frame       *table.Frame
}

// Store defines dataset registry operations.
type Store interface {
	// RegisterDataset registers a dataset and returns its resolved ID.
	RegisterDataset(id string, ds Dataset) (string, error)
	// Dataset returns a dataset by ID.
	Dataset(id string) (Dataset, error)
	// ListDatasets returns all registered datasets in stable order.
	ListDatasets() ([]Dataset, error)
}

// InMemoryStore stores datasets in memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
}

// NewInMemoryStore creates a new dataset store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		datasets: make(map[string]Dataset),
	}
}

// DatasetID returns a stable dataset ID from name/version.
func DatasetID(name, version string) string {
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + ":" + version
}

// RegisterDataset registers a dataset and returns its resolved ID.
// Registering an existing ID replaces it.
func (s *InMemoryStore) RegisterDataset(id string, ds Dataset) (string, error) {
	if strings.TrimSpace(ds.Name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidDataset)
	}
	if ds.Frame == nil {
		return "", fmt.Errorf("%w: frame is required", ErrInvalidDataset)
	}
	if id == "" {
		id = DatasetID(ds.Name, ds.Version)
	}
	if strings.TrimSpace(id) == "" {
		return "", ErrInvalidDatasetID
	}
	ds.ID = id

	s.mu.Lock()
	s.datasets[id] = ds
	s.mu.Unlock()

	return id, nil
}

// Dataset returns a dataset by ID.
func (s *InMemoryStore) Dataset(id string) (Dataset, error) {
	if id == "" {
		return Dataset{}, ErrInvalidDatasetID
	}

	s.mu.RLock()
	ds, ok := s.datasets[id]
	s.mu.RUnlock()

	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ds, nil
}

// ListDatasets returns all registered datasets sorted by ID.
func (s *InMemoryStore) ListDatasets() ([]Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.datasets))
	for id := range s.datasets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]Dataset, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.datasets[id])
	}
	return result, nil
}

// Catalog returns a catalog over the dataset's frame.
func Catalog(s Store, id string, opts catalog.Options) (*catalog.Catalog, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	return catalog.New(ds.Frame, opts)
}
