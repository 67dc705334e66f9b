package core

import (
	"context"

	"github.com/opendxi/opendxi/internal/contract"
	"go.uber.org/zap"
)

// FetchAllPages drives cursor pagination for one logical resource until
// exhaustion or the configured page ceiling, returning every node seen.
//
// path navigates the response envelope from "data" down to the connection
// object, e.g. ["repository", "pullRequests"]. A missing intermediate key
// means an absent org/repo/PR and terminates as an empty connection, not
// an error. Transport or parse failures mid-loop return whatever has been
// accumulated so far: callers must treat results as best-effort.
func FetchAllPages(ctx context.Context, client contract.GraphQLClient, log *zap.Logger, maxPages int, query string, variables map[string]any, path []string) []map[string]any {
	var allNodes []map[string]any
	var cursor any

	for page := 0; page < maxPages; page++ {
		vars := make(map[string]any, len(variables)+1)
		for k, v := range variables {
			vars[k] = v
		}
		vars["cursor"] = cursor

		result, err := client.Execute(ctx, query, vars)
		if err != nil {
			log.Warn("page fetch failed, returning partial results",
				zap.Int("pages_fetched", page), zap.Error(err))
			return allNodes
		}

		connection := walkPath(result, append([]string{"data"}, path...))
		if connection == nil {
			return allNodes
		}

		for _, node := range getSlice(connection, "nodes") {
			if m, ok := node.(map[string]any); ok {
				allNodes = append(allNodes, m)
			}
		}

		pageInfo := getMap(connection, "pageInfo")
		if !getBool(pageInfo, "hasNextPage") {
			return allNodes
		}
		cursor = pageInfo["endCursor"]
	}

	log.Warn("pagination ceiling reached, results truncated",
		zap.Int("max_pages", maxPages), zap.Int("nodes", len(allNodes)))
	return allNodes
}

// walkPath follows a key path through nested objects, returning nil as
// soon as a key is missing or a value is not an object.
func walkPath(m map[string]any, path []string) map[string]any {
	current := m
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}
