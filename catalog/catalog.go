package catalog

import (
	"errors"
	"slices"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/reconcile"
	"github.com/jonwraymond/fieldmatch/search"
	"github.com/jonwraymond/fieldmatch/table"
)

// Error values for catalog operations.
var (
	ErrNilFrame = errors.New("catalog: nil frame")
	ErrNoField  = errors.New("catalog: no target field")
)

// Options configures a Catalog.
type Options struct {
	// Fields restricts Search. Nil searches all string and object columns.
	Fields []string

	// Limit is the default Search limit. 0 means search.DefaultLimit.
	Limit int

	CaseSensitive bool

	// Field is the column that identifiers are reconciled against.
	Field string

	// SynonymsField defaults to "synonyms".
	SynonymsField string

	// Keep selects claimants of ambiguous synonyms. Default: KeepAll.
	Keep reconcile.Keep

	// Logger receives diagnostics from every call. Nil discards them.
	Logger *logger.Logger
}

// Catalog is a reference frame with bound defaults.
type Catalog struct {
	frame *table.Frame
	opts  Options
}

// New creates a Catalog over f.
func New(f *table.Frame, opts Options) (*Catalog, error) {
	if f == nil {
		return nil, ErrNilFrame
	}
	opts.Fields = slices.Clone(opts.Fields)
	return &Catalog{frame: f, opts: opts}, nil
}

// Frame returns the reference frame.
func (c *Catalog) Frame() *table.Frame {
	return c.frame
}

// Search ranks the reference records against query.
func (c *Catalog) Search(query string, opts ...CallOption) (search.Results, error) {
	cfg := c.resolve(opts)
	return search.Search(c.frame, query, search.Options{
		Fields:        cfg.Fields,
		Limit:         cfg.Limit,
		CaseSensitive: cfg.CaseSensitive,
		Logger:        cfg.Logger,
	})
}

// SearchFrame is Search returning the matching rows as a frame.
func (c *Catalog) SearchFrame(query string, opts ...CallOption) (*table.Frame, error) {
	res, err := c.Search(query, opts...)
	if err != nil {
		return nil, err
	}
	return res.Frame(c.frame), nil
}

// Inspect reports which identifiers occur in the target field.
func (c *Catalog) Inspect(identifiers []string, opts ...CallOption) (reconcile.Inspection, error) {
	cfg := c.resolve(opts)
	if cfg.Field == "" {
		return reconcile.Inspection{}, ErrNoField
	}
	return reconcile.Inspect(c.frame, identifiers, cfg.Field, cfg.inspectOptions())
}

// InspectFlags returns one flag per identifier.
func (c *Catalog) InspectFlags(identifiers []string, opts ...CallOption) ([]reconcile.Flag, error) {
	cfg := c.resolve(opts)
	if cfg.Field == "" {
		return nil, ErrNoField
	}
	return reconcile.InspectFlags(c.frame, identifiers, cfg.Field, cfg.inspectOptions())
}

// MapSynonyms resolves identifiers against the target field.
func (c *Catalog) MapSynonyms(identifiers []string, opts ...CallOption) ([]reconcile.Resolution, error) {
	cfg := c.resolve(opts)
	if cfg.Field == "" {
		return nil, ErrNoField
	}
	return reconcile.MapSynonyms(c.frame, identifiers, cfg.Field, cfg.reconcileOptions())
}

// Mapper returns only the rewritten identifiers.
func (c *Catalog) Mapper(identifiers []string, opts ...CallOption) (map[string][]string, error) {
	cfg := c.resolve(opts)
	if cfg.Field == "" {
		return nil, ErrNoField
	}
	return reconcile.Mapper(c.frame, identifiers, cfg.Field, cfg.reconcileOptions())
}

// Standardize maps synonyms and returns one value per identifier. An
// ambiguous synonym yields its first claimant even under KeepAll; call
// MapSynonyms to see every claimant.
func (c *Catalog) Standardize(identifiers []string, opts ...CallOption) ([]string, error) {
	res, err := c.MapSynonyms(identifiers, opts...)
	if err != nil {
		return nil, err
	}
	return reconcile.Resolved(res), nil
}

// ExplodeSynonyms returns the synonym lookup for the target field.
func (c *Catalog) ExplodeSynonyms(opts ...CallOption) (reconcile.SynonymMap, error) {
	cfg := c.resolve(opts)
	if cfg.Field == "" {
		return nil, ErrNoField
	}
	ro := cfg.reconcileOptions()
	return reconcile.ExplodeSynonyms(c.frame, ro.SynonymsField, cfg.Field, reconcile.ExplodeOptions{
		Keep:          ro.Keep,
		CaseSensitive: ro.CaseSensitive,
	})
}
