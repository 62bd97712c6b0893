package catalog_test

import (
	"fmt"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/reconcile"
	"github.com/jonwraymond/fieldmatch/table"
)

func Example() {
	genes := table.FromRecords([]table.Record{
		{"symbol": "BRCA2", "synonyms": "FAD|FAD1|FANCD1"},
		{"symbol": "GCLC", "synonyms": "GCS"},
		{"symbol": "UGCG", "synonyms": "GCS"},
	})

	cat, err := catalog.New(genes, catalog.Options{Field: "symbol"})
	if err != nil {
		panic(err)
	}

	symbols, _ := cat.Standardize([]string{"FANCD1", "GCS"}, catalog.WithKeep(reconcile.KeepLast))
	fmt.Println(symbols)

	hits, _ := cat.Search("GCS")
	fmt.Println(hits.Indices(), hits.Ranks())
	// Output:
	// [BRCA2 UGCG]
	// [1 2] [423 423]
}
