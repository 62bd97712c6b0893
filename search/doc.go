// Package search ranks the records of a table.Frame against a query.
//
// Search runs in two phases. The filter phase keeps every record where the
// query occurs in at least one selected field. The ranking phase scores each
// kept record with an additive rule table and orders the results by rank,
// highest first. Ties keep their frame order.
//
// # Rules
//
// Every rule fires at most once per field and the record rank is the sum over
// fields:
//
//	exact      200  whole value equals the query
//	synonym    200  query is one whole "|"-separated synonym
//	token       10  query is bounded by start/end or one of " |.,;:"
//	prefix       8  query starts a synonym that has no spaces after it
//	right        2  query starts the value or follows " " or "|"
//	left         2  query ends the value or precedes a delimiter
//	contains     1  query occurs anywhere
//
// # Queries
//
// The query is an RE2 regular expression and is not escaped. Use
// regexp.QuoteMeta to search for literal text:
//
//	res, err := search.Search(f, regexp.QuoteMeta("T-cell (CD4+)"), search.Options{})
//
// # Field Selection
//
// With Options.Fields nil every string or object column is searched. Columns
// holding only numbers or booleans are searched only when named explicitly,
// and are matched against their string form.
package search
