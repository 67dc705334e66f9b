package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opendxi/opendxi/core"
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	svc     *core.Service
}

// clampCount bounds a sprint count argument to the supported range.
func clampCount(count int) int {
	if count < 1 {
		return contract.DefaultSprintLimit
	}
	if count > contract.MaxSprintLimit {
		return contract.MaxSprintLimit
	}
	return count
}

// parseWindow validates a start/end pair as a sprint window.
func parseWindow(start, end string) (schema.SprintWindow, error) {
	if _, err := time.Parse(schema.DateOnly, start); err != nil {
		return schema.SprintWindow{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", start)
	}
	if _, err := time.Parse(schema.DateOnly, end); err != nil {
		return schema.SprintWindow{}, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", end)
	}
	if start > end {
		return schema.SprintWindow{}, fmt.Errorf("start_date %s is after end_date %s", start, end)
	}
	return schema.SprintWindow{Start: start, End: end}, nil
}

func (h *toolHandler) handleListSprints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampCount(request.GetInt("limit", contract.DefaultSprintLimit))
	sprints := h.svc.AllSprints(limit)

	jsonData, _ := json.MarshalIndent(sprints, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprintMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window, err := parseWindow(
		request.GetString("start_date", ""),
		request.GetString("end_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	force := request.GetBool("force_refresh", false)

	result := h.svc.GetMetricsForSprint(ctx, window, force)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprintHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := clampCount(request.GetInt("count", contract.DefaultSprintLimit))

	entries := h.svc.SprintHistory(ctx, count)
	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDeveloperHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := request.GetString("developer", "")
	if login == "" {
		return mcp.NewToolResultError("developer is required"), nil
	}
	count := clampCount(request.GetInt("count", contract.DefaultSprintLimit))

	history, err := h.svc.DeveloperHistory(ctx, login, count)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, _ := json.MarshalIndent(history, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.svc.StoreStats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
