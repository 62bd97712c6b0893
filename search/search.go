package search

import (
	"fmt"
	"slices"
	"time"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/normalize"
	"github.com/jonwraymond/fieldmatch/table"
)

// Limits for Options.Limit.
const (
	DefaultLimit = 20
	NoLimit      = -1
)

// Options configures a Search call.
type Options struct {
	// Fields restricts matching to the named columns. When nil, every string
	// or object column is searched; scalar columns must be named explicitly.
	Fields []string

	// Limit caps the number of results. 0 means DefaultLimit, negative means
	// no limit.
	Limit int

	// CaseSensitive disables case-insensitive matching.
	CaseSensitive bool

	// Logger receives per-call diagnostics. Nil discards them.
	Logger *logger.Logger
}

// field is one selected column with its coercion decision.
type field struct {
	name   string
	coerce bool
}

// Search filters f to the records whose selected fields contain query and
// orders them by rank, highest first. query is a regular expression.
func Search(f *table.Frame, query string, opts Options) (Results, error) {
	start := time.Now()
	log := opts.Logger

	plan, err := selectFields(f, opts.Fields)
	if err != nil {
		return nil, err
	}
	m, err := compile(query, opts.CaseSensitive, DefaultRules())
	if err != nil {
		return nil, err
	}
	if f.Len() == 0 {
		return Results{}, nil
	}

	hits := make(Results, 0)
	for i := 0; i < f.Len(); i++ {
		values, ok := m.filter(f, i, plan)
		if !ok {
			continue
		}
		rank := 0
		for _, v := range values {
			rank += m.score(v)
		}
		hits = append(hits, Hit{Index: i, Record: f.Row(i), Rank: rank})
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return b.Rank - a.Rank
	})

	matched := len(hits)
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	log.Debug("searched frame",
		"query", query,
		"fields", len(plan),
		"matched", matched,
		"returned", len(hits),
		"elapsed", time.Since(start))
	return hits, nil
}

// filter returns the coerced values of row i when at least one of them
// contains the query.
func (m *matcher) filter(f *table.Frame, i int, plan []field) ([]string, bool) {
	values := make([]string, 0, len(plan))
	found := false
	for _, fd := range plan {
		s, ok := cell(f.Value(i, fd.name), fd.coerce)
		if !ok {
			continue
		}
		values = append(values, s)
		if !found && m.contains.MatchString(s) {
			found = true
		}
	}
	return values, found
}

// cell returns the searchable text of v. Without coercion only strings
// qualify; null cells never do.
func cell(v any, coerce bool) (string, bool) {
	if normalize.IsNull(v) {
		return "", false
	}
	if !coerce {
		s, ok := v.(string)
		return s, ok
	}
	return normalize.Stringify(v)
}

func selectFields(f *table.Frame, names []string) ([]field, error) {
	if names == nil {
		var plan []field
		for _, c := range f.Columns() {
			k, _ := f.Kind(c)
			if k == table.KindScalar {
				continue
			}
			plan = append(plan, field{name: c, coerce: k != table.KindString})
		}
		return plan, nil
	}

	plan := make([]field, 0, len(names))
	for _, n := range names {
		k, err := f.Kind(n)
		if err != nil {
			return nil, fmt.Errorf("search field: %w", err)
		}
		plan = append(plan, field{name: n, coerce: k != table.KindString})
	}
	return plan, nil
}
