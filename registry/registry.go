package registry

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/search"
	"github.com/jonwraymond/fieldmatch/table"
	"github.com/jonwraymond/toolfoundation/model"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo

	// Logger receives stability notices and call diagnostics. Nil discards them.
	Logger *logger.Logger
}

// ServerInfo describes this MCP server for initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

type localTool struct {
	tool      model.Tool
	backend   model.ToolBackend
	handler   ToolHandler
	stability Stability
}

// Registry is an MCP tool registry with local tool registration, lexical
// tool search and the MCP request handlers.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*localTool
	config Config
}

// New creates a new Registry with the given config.
func New(cfg Config) *Registry {
	return &Registry{
		tools:  make(map[string]*localTool),
		config: cfg,
	}
}

// RegisterLocal registers a tool with a local execution handler. Options
// override the tool's namespace, version and tags and attach stability
// markers. Registering an existing tool ID replaces it.
func (r *Registry) RegisterLocal(tool model.Tool, handler ToolHandler, opts ...LocalToolOption) error {
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, tool.Name)
	}
	cfg := applyLocalToolOptions(opts)
	cfg.applyTo(&tool)
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	entry := &localTool{
		tool:      tool,
		backend:   model.NewLocalBackend(tool.Name),
		handler:   handler,
		stability: cfg.stability,
	}

	r.mu.Lock()
	r.tools[tool.ToolID()] = entry
	r.mu.Unlock()

	return nil
}

// RegisterLocalFunc is a convenience for inline tool definition.
func (r *Registry) RegisterLocalFunc(
	name, description string,
	inputSchema map[string]any,
	handler ToolHandler,
	opts ...LocalToolOption,
) error {
	cfg := applyLocalToolOptions(opts)
	tool := buildLocalTool(name, description, inputSchema, cfg)
	return r.RegisterLocal(tool, handler, opts...)
}

// Search ranks registered tools against query. The query is literal text
// matched over ID, name, namespace, description and tags. An empty query
// lists tools in ID order.
func (r *Registry) Search(ctx context.Context, query string, limit int) ([]model.Tool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		if limit == 0 {
			limit = search.DefaultLimit
		}
		if limit > 0 && len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	f, err := toolFrame(all)
	if err != nil {
		return nil, err
	}
	res, err := search.Search(f, regexp.QuoteMeta(query), search.Options{
		Fields: []string{"id", "name", "namespace", "description", "tags"},
		Limit:  limit,
		Logger: r.config.Logger,
	})
	if err != nil {
		return nil, err
	}

	tools := make([]model.Tool, len(res))
	for i, h := range res {
		tools[i] = all[h.Index]
	}
	return tools, nil
}

func toolFrame(tools []model.Tool) (*table.Frame, error) {
	records := make([]table.Record, len(tools))
	for i, t := range tools {
		records[i] = table.Record{
			"id":          t.ToolID(),
			"name":        t.Name,
			"namespace":   t.Namespace,
			"description": t.Description,
			"tags":        strings.Join(t.Tags, "|"),
		}
	}
	return table.New([]string{"id", "name", "namespace", "description", "tags"}, records)
}

// ListAll returns all registered tools sorted by ID.
func (r *Registry) ListAll(ctx context.Context) ([]model.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tools := make([]model.Tool, 0, len(ids))
	for _, id := range ids {
		tools = append(tools, r.tools[id].tool)
	}
	return tools, nil
}

// ListNamespaces returns all non-empty tool namespaces, sorted.
func (r *Registry) ListNamespaces(ctx context.Context) ([]string, error) {
	tools, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range tools {
		if t.Namespace != "" && !slices.Contains(out, t.Namespace) {
			out = append(out, t.Namespace)
		}
	}
	sort.Strings(out)
	return out, nil
}

// GetTool returns a tool by ID, or by name when the name is unique.
func (r *Registry) GetTool(ctx context.Context, id string) (model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, err := r.lookup(id)
	if err != nil {
		return model.Tool{}, err
	}
	return entry.tool, nil
}

// lookup resolves a tool ID, falling back to a unique bare name.
// Callers hold r.mu.
func (r *Registry) lookup(name string) (*localTool, error) {
	if entry, ok := r.tools[name]; ok {
		return entry, nil
	}
	var found *localTool
	for _, entry := range r.tools {
		if entry.tool.Name != name {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousTool, name)
		}
		found = entry
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return found, nil
}

// Execute runs a tool by ID or unique name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	entry, err := r.lookup(name)
	r.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if entry.backend.Kind != model.BackendKindLocal || entry.handler == nil {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, entry.tool.ToolID())
	}

	log := r.config.Logger
	for _, notice := range entry.stability.Notices(entry.tool.Name) {
		log.Warn(notice, "tool", entry.tool.ToolID())
	}
	if args == nil {
		args = map[string]any{}
	}

	result, err := entry.handler(ctx, args)
	if err != nil {
		log.Debug("tool call failed", "tool", entry.tool.ToolID(), "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrExecutionFailed, entry.tool.ToolID(), err)
	}
	return result, nil
}

// RegistryStats returns registry statistics.
type RegistryStats struct {
	TotalTools   int
	Namespaces   int
	Deprecated   int
	Experimental int
	FutureChange int
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{TotalTools: len(r.tools)}
	namespaces := make(map[string]struct{})
	for _, entry := range r.tools {
		if entry.tool.Namespace != "" {
			namespaces[entry.tool.Namespace] = struct{}{}
		}
		if entry.stability.Deprecated {
			stats.Deprecated++
		}
		if entry.stability.Experimental {
			stats.Experimental++
		}
		if entry.stability.FutureChange {
			stats.FutureChange++
		}
	}
	stats.Namespaces = len(namespaces)
	return stats
}

// Stability returns the stability markers of a tool.
func (r *Registry) Stability(id string) (Stability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, err := r.lookup(id)
	if err != nil {
		return Stability{}, err
	}
	return entry.stability, nil
}
