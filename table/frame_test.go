package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellTypes() []Record {
	return []Record{
		{"name": "T cell", "synonyms": "T-cell|T lymphocyte", "children": []string{"CL:0000798"}, "depth": 3},
		{"name": "B cell", "synonyms": "B-cell", "children": []string{"CL:0009114"}, "depth": 4},
	}
}

func TestNew(t *testing.T) {
	f, err := New([]string{"name", "synonyms"}, cellTypes())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "synonyms"}, f.Columns())
	assert.Equal(t, 2, f.Len())
	assert.True(t, f.HasColumn("name"))
	assert.False(t, f.HasColumn("children"))
	assert.Equal(t, "B cell", f.Value(1, "name"))
}

func TestNew_InvalidColumns(t *testing.T) {
	_, err := New([]string{"name", "name"}, nil)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = New([]string{"name", " "}, nil)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestNew_CopiesInput(t *testing.T) {
	records := cellTypes()
	f, err := New([]string{"name"}, records)
	require.NoError(t, err)

	records[0]["name"] = "mutated"
	assert.Equal(t, "T cell", f.Value(0, "name"))

	row := f.Row(0)
	row["name"] = "mutated again"
	assert.Equal(t, "T cell", f.Value(0, "name"))
}

func TestNew_CopiesListCells(t *testing.T) {
	children := []string{"CL:0000798", "CL:0002420"}
	nested := []any{"a", []string{"b"}}
	f, err := New([]string{"name", "children", "nested"}, []Record{
		{"name": "T cell", "children": children, "nested": nested},
	})
	require.NoError(t, err)

	children[0] = "mutated"
	nested[1].([]string)[0] = "mutated"
	assert.Equal(t, []string{"CL:0000798", "CL:0002420"}, f.Value(0, "children"))
	assert.Equal(t, []any{"a", []string{"b"}}, f.Value(0, "nested"))

	row := f.Row(0)
	row["children"].([]string)[1] = "mutated"
	assert.Equal(t, "CL:0002420", f.Value(0, "children").([]string)[1])

	sub := f.Take([]int{0})
	sub.Row(0)["children"].([]string)[0] = "x"
	assert.Equal(t, "CL:0000798", f.Value(0, "children").([]string)[0])
	assert.Equal(t, "CL:0000798", sub.Value(0, "children").([]string)[0])
}

func TestFromRecords(t *testing.T) {
	f := FromRecords(cellTypes())
	assert.Equal(t, []string{"children", "depth", "name", "synonyms"}, f.Columns())
	assert.Equal(t, 2, f.Len())
}

func TestEmpty(t *testing.T) {
	f := Empty("a", "b", "c")
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, []string{"a", "b", "c"}, f.Columns())
}

func TestNilFrame(t *testing.T) {
	var f *Frame
	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Columns())
	assert.False(t, f.HasColumn("a"))
}

func TestColumn(t *testing.T) {
	f := FromRecords(cellTypes())

	values, err := f.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"T cell", "B cell"}, values)

	_, err = f.Column("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.ErrorIs(t, err, ErrInvalidColumn)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestTake(t *testing.T) {
	f := FromRecords(cellTypes())

	sub := f.Take([]int{1, 0})
	assert.Equal(t, f.Columns(), sub.Columns())
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "B cell", sub.Value(0, "name"))
	assert.Equal(t, "T cell", sub.Value(1, "name"))

	none := f.Take(nil)
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, f.Columns(), none.Columns())
}

func TestKind(t *testing.T) {
	f := FromRecords(cellTypes())

	tests := []struct {
		column string
		want   Kind
	}{
		{"name", KindString},
		{"synonyms", KindString},
		{"children", KindObject},
		{"depth", KindScalar},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := f.Kind(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := f.Kind("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindString, Classify([]any{"a", nil, math.NaN(), "b"}))
	assert.Equal(t, KindScalar, Classify([]any{1, 2.5, true, nil}))
	assert.Equal(t, KindObject, Classify([]any{"a", 1}))
	assert.Equal(t, KindObject, Classify([]any{nil, nil}))
	assert.Equal(t, KindObject, Classify(nil))
	assert.Equal(t, KindObject, Classify([]any{[]any{"a"}}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "object", KindObject.String())
}
