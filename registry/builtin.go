package registry

import (
	"context"
	"fmt"
	"math"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/normalize"
	"github.com/jonwraymond/fieldmatch/reconcile"
	"github.com/jonwraymond/fieldmatch/store"
)

// CatalogNamespace is the namespace of the tools installed by
// RegisterCatalogTools.
const CatalogNamespace = "fieldmatch"

var (
	datasetProp    = map[string]any{"type": "string", "description": "Dataset ID"}
	identifierProp = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	caseProp       = map[string]any{"type": "boolean"}
	keepProp       = map[string]any{"type": "string", "enum": []string{"all", "first", "last"}}
)

func objectSchema(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// RegisterCatalogTools installs search, inspect, map_synonyms,
// explode_synonyms and list_datasets, all backed by datasets in st.
func RegisterCatalogTools(r *Registry, st store.Store) error {
	b := &builtins{store: st, reg: r}
	tools := []struct {
		name, description string
		schema            map[string]any
		handler           ToolHandler
	}{
		{
			"search",
			"Rank the records of a dataset against a regular expression query",
			objectSchema([]string{"dataset", "query"}, map[string]any{
				"dataset":        datasetProp,
				"query":          map[string]any{"type": "string"},
				"fields":         identifierProp,
				"limit":          map[string]any{"type": "integer"},
				"case_sensitive": caseProp,
			}),
			b.search,
		},
		{
			"inspect",
			"Report which identifiers occur in a dataset field",
			objectSchema([]string{"dataset", "identifiers", "field"}, map[string]any{
				"dataset":        datasetProp,
				"identifiers":    identifierProp,
				"field":          map[string]any{"type": "string"},
				"case_sensitive": caseProp,
			}),
			b.inspect,
		},
		{
			"map_synonyms",
			"Replace synonyms with the canonical values of a dataset field",
			objectSchema([]string{"dataset", "identifiers", "field"}, map[string]any{
				"dataset":        datasetProp,
				"identifiers":    identifierProp,
				"field":          map[string]any{"type": "string"},
				"synonyms_field": map[string]any{"type": "string"},
				"keep":           keepProp,
				"case_sensitive": caseProp,
				"return_mapper":  map[string]any{"type": "boolean"},
			}),
			b.mapSynonyms,
		},
		{
			"explode_synonyms",
			"Build the synonym to canonical value lookup of a dataset",
			objectSchema([]string{"dataset", "field"}, map[string]any{
				"dataset":        datasetProp,
				"field":          map[string]any{"type": "string"},
				"synonyms_field": map[string]any{"type": "string"},
				"keep":           keepProp,
				"case_sensitive": caseProp,
			}),
			b.explodeSynonyms,
		},
		{
			"list_datasets",
			"List the registered reference datasets",
			objectSchema([]string{}, map[string]any{}),
			b.listDatasets,
		},
	}

	for _, t := range tools {
		if err := r.RegisterLocalFunc(t.name, t.description, t.schema, t.handler,
			WithNamespace(CatalogNamespace), WithTags("catalog")); err != nil {
			return fmt.Errorf("register %s: %w", t.name, err)
		}
	}
	return nil
}

type builtins struct {
	store store.Store
	reg   *Registry
}

// catalogFor resolves the dataset argument and the call options shared by
// every catalog tool.
func (b *builtins) catalogFor(args map[string]any) (*catalog.Catalog, []catalog.CallOption, error) {
	id, err := requireString(args, "dataset")
	if err != nil {
		return nil, nil, err
	}
	cat, err := store.Catalog(b.store, id, catalog.Options{Logger: b.reg.config.Logger})
	if err != nil {
		return nil, nil, err
	}

	var opts []catalog.CallOption
	if v, ok := args["case_sensitive"].(bool); ok {
		opts = append(opts, catalog.WithCaseSensitive(v))
	}
	if s, ok := args["field"].(string); ok {
		opts = append(opts, catalog.WithField(s))
	}
	if s, ok := args["synonyms_field"].(string); ok {
		opts = append(opts, catalog.WithSynonymsField(s))
	}
	if s, ok := args["keep"].(string); ok {
		k, err := reconcile.ParseKeep(s)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		opts = append(opts, catalog.WithKeep(k))
	}
	return cat, opts, nil
}

func (b *builtins) search(_ context.Context, args map[string]any) (any, error) {
	cat, opts, err := b.catalogFor(args)
	if err != nil {
		return nil, err
	}
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}
	if fields := stringSliceFromAny(args["fields"]); fields != nil {
		opts = append(opts, catalog.WithFields(fields...))
	}
	if n, ok := intFromAny(args["limit"]); ok {
		opts = append(opts, catalog.WithLimit(n))
	}

	res, err := cat.Search(query, opts...)
	if err != nil {
		return nil, err
	}
	hits := make([]map[string]any, len(res))
	for i, h := range res {
		hits[i] = map[string]any{"index": h.Index, "rank": h.Rank, "record": h.Record}
	}
	return map[string]any{"hits": hits}, nil
}

func (b *builtins) inspect(_ context.Context, args map[string]any) (any, error) {
	cat, opts, err := b.catalogFor(args)
	if err != nil {
		return nil, err
	}
	got, err := cat.Inspect(stringSliceFromAny(args["identifiers"]), opts...)
	if err != nil {
		return nil, err
	}
	return map[string]any{"mapped": got.Mapped, "not_mapped": got.NotMapped}, nil
}

func (b *builtins) mapSynonyms(_ context.Context, args map[string]any) (any, error) {
	cat, opts, err := b.catalogFor(args)
	if err != nil {
		return nil, err
	}
	ids := stringSliceFromAny(args["identifiers"])
	res, err := cat.MapSynonyms(ids, opts...)
	if err != nil {
		return nil, err
	}

	if mapper, _ := args["return_mapper"].(bool); mapper {
		m := make(map[string]any)
		for _, r := range res {
			if r.Rewritten {
				m[r.Input] = r.Output()
			}
		}
		return map[string]any{"mapper": m}, nil
	}

	values := make([]any, len(res))
	for i, r := range res {
		values[i] = r.Output()
	}
	return map[string]any{"values": values}, nil
}

func (b *builtins) explodeSynonyms(_ context.Context, args map[string]any) (any, error) {
	cat, opts, err := b.catalogFor(args)
	if err != nil {
		return nil, err
	}
	m, err := cat.ExplodeSynonyms(opts...)
	if err != nil {
		return nil, err
	}
	return map[string]any{"synonyms": m}, nil
}

func (b *builtins) listDatasets(_ context.Context, _ map[string]any) (any, error) {
	list, err := b.store.ListDatasets()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(list))
	for i, ds := range list {
		out[i] = map[string]any{
			"id":          ds.ID,
			"name":        ds.Name,
			"version":     ds.Version,
			"description": ds.Description,
			"rows":        ds.Frame.Len(),
			"columns":     ds.Frame.Columns(),
		}
	}
	return map[string]any{"datasets": out}, nil
}

func requireString(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidRequest, key)
	}
	return s, nil
}

func stringSliceFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		// nulls become "" so outputs stay aligned with inputs
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = normalize.ToCanonicalString(item, true)
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

// intFromAny accepts JSON numbers, which decode as float64.
func intFromAny(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	default:
		return 0, false
	}
}
