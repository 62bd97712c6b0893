// Package catalog binds a reference table to search and reconciliation
// defaults.
//
// It is the recommended entry point when the same table serves many calls:
//
//	cat, err := catalog.New(genes, catalog.Options{
//	    Field:  "symbol",
//	    Logger: log,
//	})
//	if err != nil {
//	    log.Error(err.Error())
//	}
//
//	hits, err := cat.Search("BRCA", catalog.WithLimit(5))
//	symbols, err := cat.Standardize([]string{"FANCD1", "GCS"}, catalog.WithKeep(reconcile.KeepFirst))
//
// Per-call [CallOption] values override the defaults for one call only.
//
// # Thread Safety
//
// A Catalog is immutable after New and safe for concurrent use.
package catalog
