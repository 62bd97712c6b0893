package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/fieldmatch/store"
	"github.com/jonwraymond/fieldmatch/table"
)

func catalogRegistry(t *testing.T) *Registry {
	t.Helper()
	genes, err := table.New([]string{"symbol", "synonyms"}, []table.Record{
		{"symbol": "BRCA2", "synonyms": "FAD|FAD1|FANCD1"},
		{"symbol": "GCLC", "synonyms": "GCS"},
		{"symbol": "UGCG", "synonyms": "GCS"},
	})
	require.NoError(t, err)

	st := store.NewInMemoryStore()
	_, err = st.RegisterDataset("", store.Dataset{Name: "genes", Version: "v1", Frame: genes})
	require.NoError(t, err)

	reg := New(Config{ServerInfo: ServerInfo{Name: "fieldmatch", Version: "test"}})
	require.NoError(t, RegisterCatalogTools(reg, st))
	return reg
}

// call runs a tool through tools/call and decodes the result as JSON would
// arrive at a client.
func call(t *testing.T, reg *Registry, name string, args map[string]any) (map[string]any, *MCPError) {
	t.Helper()
	params, err := json.Marshal(map[string]any{"name": name, "arguments": args})
	require.NoError(t, err)

	resp := reg.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if resp.Error != nil {
		return nil, resp.Error
	}
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StructuredContent map[string]any `json:"structuredContent"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Content, 1)
	assert.Equal(t, "text", out.Content[0].Type)
	assert.JSONEq(t, mustJSON(t, out.StructuredContent), out.Content[0].Text)
	return out.StructuredContent, nil
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestRegisterCatalogTools(t *testing.T) {
	reg := catalogRegistry(t)

	stats := reg.Stats()
	assert.Equal(t, 5, stats.TotalTools)
	assert.Equal(t, 1, stats.Namespaces)

	tool, err := reg.GetTool(context.Background(), "fieldmatch:map_synonyms")
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog"}, tool.Tags)

	found, err := reg.Search(context.Background(), "synonyms", -1)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.ElementsMatch(t, []string{"map_synonyms", "explode_synonyms"}, []string{found[0].Name, found[1].Name})
}

func TestBuiltin_Search(t *testing.T) {
	reg := catalogRegistry(t)

	out, rpcErr := call(t, reg, "search", map[string]any{"dataset": "genes:v1", "query": "GCS", "limit": 1})
	require.Nil(t, rpcErr)
	hits := out["hits"].([]any)
	require.Len(t, hits, 1)
	hit := hits[0].(map[string]any)
	assert.Equal(t, float64(423), hit["rank"])
	assert.Equal(t, float64(1), hit["index"])

	_, rpcErr = call(t, reg, "search", map[string]any{"dataset": "genes:v1", "query": "("})
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeToolExecFailed, rpcErr.Code)
}

func TestBuiltin_Inspect(t *testing.T) {
	reg := catalogRegistry(t)

	out, rpcErr := call(t, reg, "fieldmatch:inspect", map[string]any{
		"dataset":     "genes:v1",
		"identifiers": []string{"brca2", "GCS"},
		"field":       "symbol",
	})
	require.Nil(t, rpcErr)
	assert.Equal(t, []any{"brca2"}, out["mapped"])
	assert.Equal(t, []any{"GCS"}, out["not_mapped"])
}

func TestBuiltin_MapSynonyms(t *testing.T) {
	reg := catalogRegistry(t)
	args := map[string]any{
		"dataset":     "genes:v1",
		"identifiers": []string{"FANCD1", "GCS", "TP53"},
		"field":       "symbol",
	}

	out, rpcErr := call(t, reg, "map_synonyms", args)
	require.Nil(t, rpcErr)
	assert.Equal(t, []any{"BRCA2", []any{"GCLC", "UGCG"}, "TP53"}, out["values"])

	args["keep"] = "first"
	args["return_mapper"] = true
	out, rpcErr = call(t, reg, "map_synonyms", args)
	require.Nil(t, rpcErr)
	assert.Equal(t, map[string]any{"FANCD1": "BRCA2", "GCS": "GCLC"}, out["mapper"])

	args["keep"] = "all"
	out, rpcErr = call(t, reg, "map_synonyms", args)
	require.Nil(t, rpcErr)
	assert.Equal(t, map[string]any{"FANCD1": "BRCA2", "GCS": []any{"GCLC", "UGCG"}}, out["mapper"])

	args["keep"] = "none"
	_, rpcErr = call(t, reg, "map_synonyms", args)
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
}

func TestBuiltin_NullIdentifiersStayAligned(t *testing.T) {
	reg := catalogRegistry(t)
	ids := []any{"", nil, "CD3", "FANCD1"}

	out, rpcErr := call(t, reg, "map_synonyms", map[string]any{
		"dataset":     "genes:v1",
		"identifiers": ids,
		"field":       "symbol",
	})
	require.Nil(t, rpcErr)
	assert.Equal(t, []any{"", "", "CD3", "BRCA2"}, out["values"])

	out, rpcErr = call(t, reg, "inspect", map[string]any{
		"dataset":     "genes:v1",
		"identifiers": ids,
		"field":       "symbol",
	})
	require.Nil(t, rpcErr)
	assert.Empty(t, out["mapped"])
	assert.Equal(t, []any{"", "", "CD3", "FANCD1"}, out["not_mapped"])
}

func TestStringSliceFromAny(t *testing.T) {
	assert.Equal(t, []string{"a", "", "3"}, stringSliceFromAny([]any{"a", nil, 3}))
	assert.Equal(t, []string{"x"}, stringSliceFromAny("x"))
	assert.Nil(t, stringSliceFromAny(42))
}

func TestBuiltin_ExplodeSynonyms(t *testing.T) {
	reg := catalogRegistry(t)

	out, rpcErr := call(t, reg, "explode_synonyms", map[string]any{
		"dataset": "genes:v1", "field": "symbol", "keep": "last", "case_sensitive": true,
	})
	require.Nil(t, rpcErr)
	syn := out["synonyms"].(map[string]any)
	assert.Equal(t, []any{"UGCG"}, syn["GCS"])
	assert.Equal(t, []any{"BRCA2"}, syn["FAD1"])
}

func TestBuiltin_ListDatasets(t *testing.T) {
	reg := catalogRegistry(t)

	out, rpcErr := call(t, reg, "list_datasets", nil)
	require.Nil(t, rpcErr)
	list := out["datasets"].([]any)
	require.Len(t, list, 1)
	ds := list[0].(map[string]any)
	assert.Equal(t, "genes:v1", ds["id"])
	assert.Equal(t, float64(3), ds["rows"])
}

func TestBuiltin_MissingArguments(t *testing.T) {
	reg := catalogRegistry(t)

	_, rpcErr := call(t, reg, "search", map[string]any{"query": "GCS"})
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)

	_, rpcErr = call(t, reg, "search", map[string]any{"dataset": "missing", "query": "GCS"})
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeToolExecFailed, rpcErr.Code)
}

func TestIntFromAny(t *testing.T) {
	n, ok := intFromAny(float64(5))
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = intFromAny(2.5)
	assert.False(t, ok)
	_, ok = intFromAny("5")
	assert.False(t, ok)
}
