package table

import "github.com/jonwraymond/fieldmatch/normalize"

// Kind classifies the values held by a column.
type Kind int

const (
	// KindObject marks mixed, list-valued or all-null columns.
	KindObject Kind = iota
	// KindString marks columns whose non-null values are all strings.
	KindString
	// KindScalar marks columns whose non-null values are all numbers or booleans.
	KindScalar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindScalar:
		return "scalar"
	default:
		return "object"
	}
}

// Kind classifies the named column by scanning its values once.
func (f *Frame) Kind(name string) (Kind, error) {
	values, err := f.Column(name)
	if err != nil {
		return KindObject, err
	}
	return Classify(values), nil
}

// Classify returns the Kind of a column of values.
func Classify(values []any) Kind {
	strs, scalars := 0, 0
	for _, v := range values {
		if normalize.IsNull(v) {
			continue
		}
		switch v.(type) {
		case string:
			strs++
		case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			scalars++
		default:
			return KindObject
		}
		if strs > 0 && scalars > 0 {
			return KindObject
		}
	}
	switch {
	case strs > 0:
		return KindString
	case scalars > 0:
		return KindScalar
	default:
		return KindObject
	}
}
