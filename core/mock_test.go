package core

import (
	"context"
	"sync"

	"github.com/opendxi/opendxi/schema"
)

// stubClient replays scripted responses in call order. A nil entry in
// responses yields the paired error instead.
type stubClient struct {
	mu        sync.Mutex
	responses []map[string]any
	errs      []error
	calls     []map[string]any
}

func (c *stubClient) Execute(_ context.Context, _ string, variables map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := len(c.calls)
	c.calls = append(c.calls, variables)
	if idx >= len(c.responses) {
		return nil, errExhausted
	}
	if c.responses[idx] == nil {
		return nil, c.errs[idx]
	}
	return c.responses[idx], nil
}

var errExhausted = errScripted("no scripted response left")

type errScripted string

func (e errScripted) Error() string { return string(e) }

// connectionPage builds a response envelope with the connection object at
// the given path under "data".
func connectionPage(path []string, nodes []any, hasNext bool, endCursor string) map[string]any {
	connection := map[string]any{
		"nodes": nodes,
		"pageInfo": map[string]any{
			"hasNextPage": hasNext,
			"endCursor":   endCursor,
		},
	}
	current := connection
	for i := len(path) - 1; i >= 0; i-- {
		current = map[string]any{path[i]: current}
	}
	return map[string]any{"data": current}
}

// fakeStore is an in-memory SprintStore for coordinator tests.
type fakeStore struct {
	mu       sync.Mutex
	payloads map[string][]byte
	versions map[string]int
	saves    int
	deletes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payloads: make(map[string][]byte),
		versions: make(map[string]int),
	}
}

func (f *fakeStore) Get(key string) ([]byte, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.payloads[key]
	return payload, f.versions[key], ok
}

func (f *fakeStore) Save(window schema.SprintWindow, payload []byte, version int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[window.Key()] = payload
	f.versions[window.Key()] = version
	f.saves++
}

func (f *fakeStore) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.payloads, key)
	delete(f.versions, key)
	f.deletes++
}

func (f *fakeStore) Stats() (schema.StoreStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := schema.StoreStats{Backend: "fake", Connected: true, EntryCount: int64(len(f.payloads))}
	for key, payload := range f.payloads {
		stats.TotalBytes += int64(len(payload))
		stats.Entries = append(stats.Entries, schema.StoreEntryInfo{SprintKey: key, SizeBytes: int64(len(payload))})
	}
	return stats, nil
}

func (f *fakeStore) Close() error { return nil }
