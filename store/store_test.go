package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/table"
)

func TestDatasetID(t *testing.T) {
	assert.Equal(t, "", DatasetID("", "1.0.0"))
	assert.Equal(t, "genes", DatasetID("genes", ""))
	assert.Equal(t, "genes:2024-01", DatasetID("genes", "2024-01"))
}

func TestInMemoryStore_RegisterDataset(t *testing.T) {
	s := NewInMemoryStore()

	id, err := s.RegisterDataset("", testDataset("genes", "2024-01"))
	require.NoError(t, err)
	assert.Equal(t, "genes:2024-01", id)

	got, err := s.Dataset(id)
	require.NoError(t, err)
	assert.Equal(t, "genes", got.Name)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 2, got.Frame.Len())

	id, err = s.RegisterDataset("hgnc", testDataset("genes", "2024-01"))
	require.NoError(t, err)
	assert.Equal(t, "hgnc", id)
}

func TestInMemoryStore_RegisterDataset_Invalid(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.RegisterDataset("", Dataset{Frame: table.Empty("symbol")})
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = s.RegisterDataset("", Dataset{Name: "genes"})
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = s.RegisterDataset("  ", testDataset("genes", ""))
	assert.ErrorIs(t, err, ErrInvalidDatasetID)
}

func TestInMemoryStore_ListDatasets(t *testing.T) {
	s := NewInMemoryStore()
	_, _ = s.RegisterDataset("", testDataset("genes", ""))
	_, _ = s.RegisterDataset("", testDataset("cell_types", ""))

	list, err := s.ListDatasets()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cell_types", list[0].ID)
	assert.Equal(t, "genes", list[1].ID)
}

func TestInMemoryStore_Dataset_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.Dataset("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Dataset("")
	assert.ErrorIs(t, err, ErrInvalidDatasetID)
}

func TestCatalog(t *testing.T) {
	s := NewInMemoryStore()
	id, err := s.RegisterDataset("", testDataset("genes", ""))
	require.NoError(t, err)

	cat, err := Catalog(s, id, catalog.Options{Field: "symbol"})
	require.NoError(t, err)
	got, err := cat.Standardize([]string{"FANCD1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"BRCA2"}, got)

	_, err = Catalog(s, "missing", catalog.Options{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.RegisterDataset("", testDataset(fmt.Sprintf("ds%d", i), ""))
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := s.ListDatasets()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := s.ListDatasets()
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

func testDataset(name, version string) Dataset {
	f, _ := table.New([]string{"symbol", "synonyms"}, []table.Record{
		{"symbol": "BRCA2", "synonyms": "FAD|FANCD1"},
		{"symbol": "GCLC", "synonyms": "GCS"},
	})
	return Dataset{Name: name, Version: version, Description: "test genes", Frame: f}
}
