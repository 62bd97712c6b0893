// Package table provides the in-memory tabular dataset consumed by the
// search and reconcile packages.
//
// A [Frame] is an ordered sequence of [Record] values with an ordered column
// list. Frames are immutable: every accessor returns copies, and subsets are
// built with [Frame.Take].
//
// # Column Kinds
//
// Matching code needs to know whether a column already holds strings or has
// to be coerced. [Frame.Kind] classifies a column once:
//
//   - KindString: every non-null value is a string
//   - KindScalar: every non-null value is a number or boolean
//   - KindObject: anything else (lists, mixed values, all-null columns)
//
// # Null Markers
//
// A nil value and a floating-point NaN are both treated as null.
//
// # Errors
//
// Unknown column names fail with [ErrColumnNotFound], which wraps
// [ErrInvalidColumn]:
//
//	if errors.Is(err, table.ErrColumnNotFound) {
//	    // the caller referenced a field that does not exist
//	}
package table
