package search

import "github.com/jonwraymond/fieldmatch/table"

// Hit is one matching record with its rank.
type Hit struct {
	// Index is the record's position in the searched frame.
	Index int

	// Record is a copy of the matching row.
	Record table.Record

	// Rank is the sum of rule points over all searched fields.
	Rank int
}

// Results is a slice of Hit with helper methods.
type Results []Hit

// Indices returns the frame positions of the hits, in result order.
func (r Results) Indices() []int {
	out := make([]int, len(r))
	for i, h := range r {
		out[i] = h.Index
	}
	return out
}

// Ranks returns just the ranks.
func (r Results) Ranks() []int {
	out := make([]int, len(r))
	for i, h := range r {
		out[i] = h.Rank
	}
	return out
}

// Records returns just the records.
func (r Results) Records() []table.Record {
	out := make([]table.Record, len(r))
	for i, h := range r {
		out[i] = h.Record
	}
	return out
}

// FilterByMinRank returns hits with rank >= minRank.
func (r Results) FilterByMinRank(minRank int) Results {
	var filtered Results
	for _, h := range r {
		if h.Rank >= minRank {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Frame returns the hits as rows of src, keeping src's columns.
func (r Results) Frame(src *table.Frame) *table.Frame {
	return src.Take(r.Indices())
}
