package core

import "github.com/opendxi/opendxi/schema"

// Accessors for the loosely-typed node maps decoded from GraphQL JSON.
// All numbers arrive as float64; absent keys yield zero values.

func getMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func getSlice(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func getString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func getInt(m map[string]any, key string) int {
	v, _ := m[key].(float64)
	return int(v)
}

func getBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// dateOf truncates an RFC3339 timestamp to its YYYY-MM-DD prefix.
func dateOf(ts string) string {
	if len(ts) < len(schema.DateOnly) {
		return ts
	}
	return ts[:len(schema.DateOnly)]
}

// decodeRepository converts a repositories-query node.
func decodeRepository(node map[string]any) schema.RepositoryRef {
	return schema.RepositoryRef{
		Name:       getString(node, "name"),
		IsArchived: getBool(node, "isArchived"),
		IsFork:     getBool(node, "isFork"),
		PushedAt:   getString(node, "pushedAt"),
	}
}

// decodePullRequest converts a pull-request node, tagging it with its
// owning repository. Reviews are attached later by the orchestrator.
func decodePullRequest(node map[string]any, repo string) schema.PullRequest {
	return schema.PullRequest{
		Number:      getInt(node, "number"),
		Repo:        repo,
		CreatedAt:   getString(node, "createdAt"),
		MergedAt:    getString(node, "mergedAt"),
		AuthorLogin: getString(getMap(node, "author"), "login"),
		Additions:   getInt(node, "additions"),
		Deletions:   getInt(node, "deletions"),
	}
}

// decodeReview converts a review node.
func decodeReview(node map[string]any) schema.Review {
	return schema.Review{
		ReviewerLogin: getString(getMap(node, "author"), "login"),
		SubmittedAt:   getString(node, "submittedAt"),
		State:         getString(node, "state"),
	}
}

// decodeCommit converts a commit-history node. The author login falls
// back to the git author name when no platform account is linked.
func decodeCommit(node map[string]any) schema.Commit {
	author := getMap(node, "author")
	login := getString(getMap(author, "user"), "login")
	if login == "" {
		login = getString(author, "name")
	}
	return schema.Commit{
		AuthorLogin: login,
		Date:        getString(author, "date"),
		Additions:   getInt(node, "additions"),
		Deletions:   getInt(node, "deletions"),
	}
}
