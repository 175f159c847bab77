package rulestore

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend, *logging.MockLogger) {
	t.Helper()
	backend := NewMemoryBackend()
	logger := &logging.MockLogger{}
	store := New(backend, logger)

	// deterministic clock and ids
	next := 0
	store.newID = func() string {
		next++
		return map[int]string{1: "id-1", 2: "id-2", 3: "id-3"}[next]
	}
	store.clock = func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	return store, backend, logger
}

func namedRule(name string, priority int) models.Rule {
	return models.Rule{
		Name:     name,
		Enabled:  true,
		Priority: priority,
		Conditions: []models.Condition{
			{Field: models.FieldDescription, Operator: models.OperatorContains, Value: name},
		},
		Actions: []models.Action{{Type: models.ActionSetCategory, Value: "Misc"}},
	}
}

func TestStore_AddAssignsIdentityAndTimestamps(t *testing.T) {
	store, _, _ := newTestStore(t)

	in := namedRule("coffee", 5)
	in.ID = "ignored"
	in.CreatedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	saved, err := store.Add(in)
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	assert.Equal(t, 2026, saved.CreatedAt.Year())
}

func TestStore_ListSortedByPriorityStable(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Add(namedRule("third", 9))
	require.NoError(t, err)
	_, err = store.Add(namedRule("first", 1))
	require.NoError(t, err)
	_, err = store.Add(namedRule("second", 1))
	require.NoError(t, err)

	rules := store.List()
	require.Len(t, rules, 3)
	assert.Equal(t, "first", rules[0].Name)
	assert.Equal(t, "second", rules[1].Name) // same priority keeps insertion order
	assert.Equal(t, "third", rules[2].Name)
}

func TestStore_UpdatePreservesIdentity(t *testing.T) {
	store, _, _ := newTestStore(t)

	saved, err := store.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	updated := namedRule("espresso", 2)
	updated.ID = "someone-else"
	later := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return later }

	require.NoError(t, err)
	require.NoError(t, store.Update(saved.ID, updated))

	got, ok := store.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, "espresso", got.Name)

	assert.Error(t, store.Update("missing", updated))
}

func TestStore_SetEnabled(t *testing.T) {
	store, _, _ := newTestStore(t)

	saved, err := store.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	require.NoError(t, store.SetEnabled(saved.ID, false))
	got, ok := store.Get(saved.ID)
	require.True(t, ok)
	assert.False(t, got.Enabled)

	assert.Error(t, store.SetEnabled("missing", true))
}

func TestStore_Delete(t *testing.T) {
	store, _, _ := newTestStore(t)

	saved, err := store.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	require.NoError(t, store.Delete(saved.ID))
	_, ok := store.Get(saved.ID)
	assert.False(t, ok)

	assert.Error(t, store.Delete(saved.ID))
}

func TestStore_PersistedLayoutIsJSONArray(t *testing.T) {
	store, backend, _ := newTestStore(t)

	_, err := store.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	payload, ok := backend.Items[DefaultKey]
	require.True(t, ok)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	require.Len(t, raw, 1)
	// timestamps are ISO-8601 strings
	created, ok := raw[0]["createdAt"].(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, created)
	assert.NoError(t, err)
}

func TestStore_RoundTripThroughBackend(t *testing.T) {
	backend := NewMemoryBackend()
	first := New(backend, &logging.MockLogger{})
	saved, err := first.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	second := New(backend, &logging.MockLogger{})
	got, ok := second.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "coffee", got.Name)
	assert.Equal(t, models.OperatorContains, got.Conditions[0].Operator)
}

func TestStore_CorruptPayloadStartsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Items[DefaultKey] = "{not json"

	logger := &logging.MockLogger{}
	store := New(backend, logger)

	assert.Empty(t, store.List())
	assert.True(t, logger.HasEntry("WARN", "Failed to parse rule set, starting empty"))
}

func TestStore_AddRollsBackOnPersistFailure(t *testing.T) {
	store, backend, _ := newTestStore(t)
	backend.SetErr = assert.AnError

	_, err := store.Add(namedRule("coffee", 5))
	require.Error(t, err)
	assert.Empty(t, store.List())
}

func TestFileBackend_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	backend := NewFileBackend(dir)

	_, ok, err := backend.GetItem("rules")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.SetItem("rules", `[]`))
	payload, ok, err := backend.GetItem("rules")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, payload)

	// overwrite replaces the whole document
	require.NoError(t, backend.SetItem("rules", `[{"id":"x"}]`))
	payload, _, err = backend.GetItem("rules")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, payload)
}

func TestFileBackend_StoreIntegration(t *testing.T) {
	dir := t.TempDir()

	first := New(NewFileBackend(dir), &logging.MockLogger{})
	saved, err := first.Add(namedRule("coffee", 5))
	require.NoError(t, err)

	second := New(NewFileBackend(dir), &logging.MockLogger{})
	got, ok := second.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "coffee", got.Name)
}
