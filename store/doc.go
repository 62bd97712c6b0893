// Package store keeps named reference datasets in memory.
//
// Datasets are registered under a stable ID derived from name and version
// ("genes:2024-01") and can be turned into a catalog.Catalog on demand.
// All InMemoryStore methods are safe for concurrent use.
package store
