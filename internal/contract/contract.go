// Package contract provides interfaces and shared utilities for the
// opendxi CLI's internal architecture.
package contract

import (
	"context"

	"github.com/opendxi/opendxi/schema"
)

// GraphQLClient executes a single GraphQL query against the code-hosting
// platform and returns the decoded response envelope. Implementations must
// return an error (never a partial map) on transport or parse failure; the
// pagination driver treats any error as the end of usable pages.
//
// This allows the retrieval logic to be tested without the gh executable.
type GraphQLClient interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// SprintStore is durable persistence for sprint metrics payloads.
//
// Persistence failures never propagate: Get reports them as a miss, Save
// and Delete degrade to no-ops. Callers must tolerate an always-available
// but possibly empty store.
type SprintStore interface {
	// Get returns the stored payload and its schema version, or ok=false
	// when the key is absent or the read failed.
	Get(key string) (payload []byte, version int, ok bool)

	// Save upserts the payload under the window's key. The original
	// created_at of an existing row is preserved; updated_at advances.
	Save(window schema.SprintWindow, payload []byte, version int)

	// Delete removes the key. Absent keys and storage errors are no-ops.
	Delete(key string)

	// Stats reports entry counts, sizes and per-entry details.
	Stats() (schema.StoreStats, error)

	// Close closes the underlying connection.
	Close() error
}
