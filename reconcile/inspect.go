package reconcile

import (
	"fmt"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/normalize"
	"github.com/jonwraymond/fieldmatch/table"
)

// Flag records whether one identifier occurs in the field.
type Flag struct {
	Identifier string
	Mapped     bool
}

// Inspection splits identifiers into mapped and not mapped, in input order.
type Inspection struct {
	Mapped    []string
	NotMapped []string
}

// InspectOptions configures Inspect and InspectFlags.
type InspectOptions struct {
	CaseSensitive bool
	Logger        *logger.Logger
}

// CheckIdentifiers flags every identifier that equals one of the non-empty
// fieldValues. Duplicates are checked independently.
func CheckIdentifiers(identifiers []string, fieldValues []any, caseSensitive bool) []Flag {
	set := valueSet(fieldValues, caseSensitive)
	flags := make([]Flag, len(identifiers))
	for i, id := range identifiers {
		_, ok := set[normalize.Fold(id, caseSensitive)]
		flags[i] = Flag{Identifier: id, Mapped: ok}
	}
	return flags
}

// InspectFlags returns one Flag per identifier.
func InspectFlags(f *table.Frame, identifiers []string, field string, opts InspectOptions) ([]Flag, error) {
	values, err := f.Column(field)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	return CheckIdentifiers(identifiers, values, opts.CaseSensitive), nil
}

// Inspect reports which identifiers occur in field.
func Inspect(f *table.Frame, identifiers []string, field string, opts InspectOptions) (Inspection, error) {
	flags, err := InspectFlags(f, identifiers, field, opts)
	if err != nil {
		return Inspection{}, err
	}

	out := Inspection{Mapped: []string{}, NotMapped: []string{}}
	for _, fl := range flags {
		if fl.Mapped {
			out.Mapped = append(out.Mapped, fl.Identifier)
		} else {
			out.NotMapped = append(out.NotMapped, fl.Identifier)
		}
	}

	log := opts.Logger
	if n := len(flags); n > 0 {
		log.Success(fmt.Sprintf("%d terms (%.1f%%) are mapped", len(out.Mapped), percent(len(out.Mapped), n)),
			"field", field)
		if len(out.NotMapped) > 0 {
			log.Warn(fmt.Sprintf("%d terms (%.1f%%) are not mapped", len(out.NotMapped), percent(len(out.NotMapped), n)),
				"field", field)
		}
	}
	return out, nil
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func valueSet(values []any, caseSensitive bool) map[string]struct{} {
	entries := normalize.Strings(values, caseSensitive)
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e.Value] = struct{}{}
	}
	return set
}
