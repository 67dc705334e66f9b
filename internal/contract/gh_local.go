package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LocalGHClient implements the GraphQLClient interface by executing the
// local 'gh' binary installed on the machine. This leverages the user's
// existing GitHub authentication instead of managing tokens directly.
type LocalGHClient struct {
	timeout time.Duration
}

var _ GraphQLClient = &LocalGHClient{} // Compile-time check

// NewLocalGHClient creates a new instance of the local gh client with a
// per-call timeout.
func NewLocalGHClient(timeout time.Duration) *LocalGHClient {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &LocalGHClient{timeout: timeout}
}

// Execute runs 'gh api graphql' with the query and variables and decodes
// the JSON response. Variables are passed as individual -F flags per the
// gh CLI convention; nil values (the initial cursor) are omitted.
func (c *LocalGHClient) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	args := []string{"api", "graphql", "-f", "query=" + query}
	for key, value := range variables {
		if value == nil {
			continue
		}
		args = append(args, "-F", fmt.Sprintf("%s=%v", key, value))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gh", args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("gh query failed: %s. Check that 'gh auth status' reports a valid login", stderr)
	} else if err != nil {
		return nil, fmt.Errorf("gh query failed: %w. Ensure the GitHub CLI is installed and available on your PATH", err)
	}

	var result map[string]any
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("malformed gh response: %w", err)
	}
	return result, nil
}
