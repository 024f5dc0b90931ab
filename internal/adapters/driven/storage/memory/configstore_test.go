package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Getters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"llm.provider":         "groq",
		"llm.requests_per_min": 30,
		"retrieval.top_k":      int64(4),
		"pipeline.retries":     float64(2),
		"pipeline.temperature": 0.7,
	})

	assert.Equal(t, "groq", store.GetString("llm.provider"))
	assert.Empty(t, store.GetString("retrieval.top_k"))

	assert.Equal(t, 30, store.GetInt("llm.requests_per_min"))
	assert.Equal(t, 4, store.GetInt("retrieval.top_k"))
	assert.Equal(t, 2, store.GetInt("pipeline.retries"))
	assert.Zero(t, store.GetInt("llm.provider"))

	f, ok := store.GetFloat("pipeline.temperature")
	assert.True(t, ok)
	assert.InDelta(t, 0.7, f, 1e-9)
	f, ok = store.GetFloat("retrieval.top_k")
	assert.True(t, ok)
	assert.InDelta(t, 4.0, f, 1e-9)
	_, ok = store.GetFloat("llm.provider")
	assert.False(t, ok)
	_, ok = store.GetFloat("missing")
	assert.False(t, ok)
}

func TestConfigStore_SeedAndSnapshotAreCopies(t *testing.T) {
	seed := map[string]any{"llm.model": "llama3.2"}
	store := NewConfigStoreWith(seed)
	seed["llm.model"] = "changed"
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))

	snap := store.Snapshot()
	snap["llm.model"] = "changed"
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
}

func TestConfigStore_Replace(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"a": 1})
	store.Replace(map[string]any{"b": 2})

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, store.GetInt("b"))

	store.Replace(nil)
	require.NoError(t, store.Set("c", "x"))
	assert.Equal(t, "x", store.GetString("c"))
}

func TestConfigStore_SaveCountsCalls(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", i)
			_ = store.Set(key, i)
			_ = store.GetInt(key)
		}()
	}
	wg.Wait()

	for i := range 50 {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
