package catalog

import (
	"slices"

	"github.com/jonwraymond/fieldmatch/reconcile"
)

// CallOption overrides a Catalog default for one call.
type CallOption func(*Options)

// WithLimit sets the Search limit. Negative means no limit.
func WithLimit(n int) CallOption {
	return func(o *Options) { o.Limit = n }
}

// WithFields restricts Search to the named columns.
func WithFields(fields ...string) CallOption {
	return func(o *Options) { o.Fields = slices.Clone(fields) }
}

// WithCaseSensitive toggles case-sensitive matching.
func WithCaseSensitive(cs bool) CallOption {
	return func(o *Options) { o.CaseSensitive = cs }
}

// WithField sets the reconciliation target column.
func WithField(field string) CallOption {
	return func(o *Options) { o.Field = field }
}

// WithSynonymsField sets the synonyms column.
func WithSynonymsField(field string) CallOption {
	return func(o *Options) { o.SynonymsField = field }
}

// WithKeep sets the ambiguity policy.
func WithKeep(k reconcile.Keep) CallOption {
	return func(o *Options) { o.Keep = k }
}

func (c *Catalog) resolve(opts []CallOption) Options {
	cfg := c.opts
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (o Options) inspectOptions() reconcile.InspectOptions {
	return reconcile.InspectOptions{CaseSensitive: o.CaseSensitive, Logger: o.Logger}
}

func (o Options) reconcileOptions() reconcile.Options {
	syn := o.SynonymsField
	if syn == "" {
		syn = reconcile.DefaultSynonymsField
	}
	return reconcile.Options{
		SynonymsField: syn,
		Keep:          o.Keep,
		CaseSensitive: o.CaseSensitive,
		Logger:        o.Logger,
	}
}
