package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/normalize"
	"github.com/jonwraymond/fieldmatch/table"
)

// ErrSelfReference is returned when the synonyms field is the target field.
var ErrSelfReference = fmt.Errorf("%w: synonyms field must differ from the target field", table.ErrColumnNotFound)

// Defaults for Options and ExplodeOptions.
const (
	DefaultSynonymsField = "synonyms"
	DefaultDelimiter     = "|"
)

// SynonymMap maps a synonym (folded unless case sensitive) to the field
// values of the records that list it, in record order.
type SynonymMap map[string][]string

// ExplodeOptions configures ExplodeSynonyms.
type ExplodeOptions struct {
	Keep          Keep
	CaseSensitive bool

	// Delimiter separates synonyms within a cell. Default: "|".
	Delimiter string
}

// ExplodeSynonyms builds the synonym to owner lookup from synonymsField,
// with owners taken from field.
func ExplodeSynonyms(f *table.Frame, synonymsField, field string, opts ExplodeOptions) (SynonymMap, error) {
	if !f.HasColumn(synonymsField) {
		return nil, fmt.Errorf("synonyms field: %w: %q", table.ErrColumnNotFound, synonymsField)
	}
	if !f.HasColumn(field) {
		return nil, fmt.Errorf("field: %w: %q", table.ErrColumnNotFound, field)
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	out := make(SynonymMap)
	for i := 0; i < f.Len(); i++ {
		owner, ok := normalize.Stringify(f.Value(i, field))
		if !ok || strings.TrimSpace(owner) == "" {
			continue
		}
		for _, tok := range tokens(f.Value(i, synonymsField), delim) {
			key := normalize.Fold(tok, opts.CaseSensitive)
			if !slices.Contains(out[key], owner) {
				out[key] = append(out[key], owner)
			}
		}
	}

	for k, owners := range out {
		out[k] = opts.Keep.apply(owners)
	}
	return out, nil
}

// tokens splits a synonyms cell. List cells contribute each element.
func tokens(v any, delim string) []string {
	var parts []string
	switch t := v.(type) {
	case []string:
		parts = t
	case []any:
		for _, e := range t {
			if s, ok := normalize.Stringify(e); ok {
				parts = append(parts, s)
			}
		}
	default:
		s, ok := normalize.Stringify(v)
		if !ok {
			return nil
		}
		parts = strings.Split(s, delim)
	}

	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Options configures MapSynonyms and Mapper.
type Options struct {
	// SynonymsField is the column of "|"-separated synonyms.
	// Default: "synonyms".
	SynonymsField string

	// Delimiter separates synonyms within a cell. Default: "|".
	Delimiter string

	// Keep selects claimants of ambiguous synonyms. Default: KeepAll.
	Keep Keep

	CaseSensitive bool

	// Logger receives the mapping summary. Nil discards it.
	Logger *logger.Logger
}

// Resolution is the outcome for one identifier.
type Resolution struct {
	// Input is the identifier as given.
	Input string

	// Values holds the canonical replacements, or Input alone when the
	// identifier passed through.
	Values []string

	// Rewritten is true when Input was replaced via a synonym.
	Rewritten bool
}

// Value returns the first value, the scalar form of the resolution.
func (r Resolution) Value() string {
	if len(r.Values) == 0 {
		return r.Input
	}
	return r.Values[0]
}

// Ambiguous reports whether several records claim the identifier.
func (r Resolution) Ambiguous() bool {
	return len(r.Values) > 1
}

// Output returns the single value, or every value when the resolution is
// ambiguous. It is the form written to JSON by the tool and CLI surfaces.
func (r Resolution) Output() any {
	if r.Ambiguous() {
		return slices.Clone(r.Values)
	}
	return r.Value()
}

func passThrough(id string) Resolution {
	return Resolution{Input: id, Values: []string{id}}
}

// MapSynonyms resolves each identifier against field, rewriting known
// synonyms to their canonical values.
func MapSynonyms(f *table.Frame, identifiers []string, field string, opts Options) ([]Resolution, error) {
	out := make([]Resolution, len(identifiers))
	if f.Len() == 0 {
		for i, id := range identifiers {
			out[i] = passThrough(id)
		}
		return out, nil
	}

	synField := opts.SynonymsField
	if synField == "" {
		synField = DefaultSynonymsField
	}
	if synField == field {
		return nil, fmt.Errorf("%w: %q", ErrSelfReference, field)
	}
	values, err := f.Column(field)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}

	synonyms, err := ExplodeSynonyms(f, synField, field, ExplodeOptions{
		Keep:          opts.Keep,
		CaseSensitive: opts.CaseSensitive,
		Delimiter:     opts.Delimiter,
	})
	if err != nil {
		return nil, err
	}
	canonical := valueSet(values, opts.CaseSensitive)

	rewritten := 0
	var ambiguous []string
	for i, id := range identifiers {
		if normalize.IsEmpty(id) {
			out[i] = passThrough(id)
			continue
		}
		key := normalize.Fold(id, opts.CaseSensitive)
		if _, ok := canonical[key]; ok {
			out[i] = passThrough(id)
			continue
		}
		owners, ok := synonyms[key]
		if !ok {
			out[i] = passThrough(id)
			continue
		}
		out[i] = Resolution{Input: id, Values: slices.Clone(owners), Rewritten: true}
		rewritten++
		if out[i].Ambiguous() {
			ambiguous = append(ambiguous, id)
		}
	}

	log := opts.Logger
	if rewritten > 0 {
		log.Success(fmt.Sprintf("standardized %d synonyms", rewritten), "field", field)
	} else {
		log.Info("no synonyms found", "field", field, "synonyms_field", synField)
	}
	if len(ambiguous) > 0 {
		msg := fmt.Sprintf("%d identifiers map to several values", len(ambiguous))
		log.Warn(log.Deep(logger.LevelWarn, msg, strings.Join(ambiguous, ", ")),
			"keep", opts.Keep.String())
		log.Hint("pass keep=first or keep=last to select a single value")
	}
	return out, nil
}

// Mapper returns only the rewritten identifiers, keyed by input.
func Mapper(f *table.Frame, identifiers []string, field string, opts Options) (map[string][]string, error) {
	res, err := MapSynonyms(f, identifiers, field, opts)
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string)
	for _, r := range res {
		if r.Rewritten {
			m[r.Input] = r.Values
		}
	}
	return m, nil
}

// Resolved flattens resolutions to the first value of each. Ambiguous
// resolutions are truncated to their first claimant, whatever the Keep
// policy; inspect Resolution.Ambiguous or use Output to keep every value.
func Resolved(resolutions []Resolution) []string {
	out := make([]string, len(resolutions))
	for i, r := range resolutions {
		out[i] = r.Value()
	}
	return out
}
