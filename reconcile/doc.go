// Package reconcile maps free-text identifiers onto the canonical values of a
// reference table.
//
// [Inspect] reports which identifiers already occur in a field. [MapSynonyms]
// rewrites identifiers that are known synonyms of a canonical value, using a
// "|"-separated synonyms column. Identifiers that are already canonical pass
// through unchanged, even when some other record lists them as a synonym.
//
// Matching is case-insensitive (Unicode case folding) unless CaseSensitive is
// set. Empty and whitespace-only identifiers always pass through.
//
// # Ambiguity
//
// A synonym can be claimed by several records. [Keep] decides which claimants
// survive. The zero value, [KeepAll], keeps every claimant so ambiguity is
// never hidden:
//
//	res, _ := reconcile.MapSynonyms(genes, []string{"GCS"}, "symbol", reconcile.Options{})
//	res[0].Values      // [GCLC UGCG]
//	res[0].Ambiguous() // true
//
// # Errors
//
// Unknown fields wrap [table.ErrColumnNotFound]. Using the same column as
// both the target and the synonyms field fails with [ErrSelfReference].
package reconcile
