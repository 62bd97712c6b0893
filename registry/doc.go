// Package registry exposes reference-data operations as MCP tools.
//
// A Registry holds local tools (a model.Tool plus a handler), ranks them with
// the lexical search engine, and answers the MCP JSON-RPC methods
// initialize, ping, tools/list and tools/call. [RegisterCatalogTools] installs
// the dataset tools (search, inspect, map_synonyms, explode_synonyms,
// list_datasets) over a store.Store. A tools/call result carries the
// handler's value both as structured content and as one JSON text block.
//
// Tools can carry stability markers. Each call to a marked tool logs its
// notice at warning level before the handler runs:
//
//	reg.RegisterLocalFunc("lookup", "Old lookup", schema, handler,
//	    registry.WithDeprecated("fieldmatch:map_synonyms", "0.3.0"))
//	// lookup is deprecated and will be removed in version 0.3.0. Use fieldmatch:map_synonyms instead.
//
// Example usage:
//
//	datasets := store.NewInMemoryStore()
//	datasets.RegisterDataset("", store.Dataset{Name: "genes", Frame: genes})
//
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{Name: "fieldmatch", Version: "0.1.0"},
//	    Logger:     log,
//	})
//	if err := registry.RegisterCatalogTools(reg, datasets); err != nil {
//	    return err
//	}
//
//	registry.ServeStdio(ctx, reg)
package registry
