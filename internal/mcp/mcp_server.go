// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/opendxi/opendxi/core"
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the opendxi MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, svc *core.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"DXI Sprint Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		svc:     svc,
	}

	// --- 1. Tool: list_sprints ---
	s.AddTool(mcp.NewTool("list_sprints",
		mcp.WithDescription("List the selectable sprint windows, newest first."),
		mcp.WithNumber("limit", mcp.Description("Number of sprints to return (1-12, default 6).")),
	), h.handleListSprints)

	// --- 2. Tool: get_sprint_metrics ---
	s.AddTool(mcp.NewTool("get_sprint_metrics",
		mcp.WithDescription("Get developer DXI metrics for one sprint window."),
		mcp.WithString("start_date", mcp.Description("Sprint start date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("end_date", mcp.Description("Sprint end date (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithBoolean("force_refresh", mcp.Description("Bypass the store and fetch fresh data.")),
	), h.handleGetSprintMetrics)

	// --- 3. Tool: get_sprint_history ---
	s.AddTool(mcp.NewTool("get_sprint_history",
		mcp.WithDescription("Get team-level DXI trends across recent sprints, oldest first."),
		mcp.WithNumber("count", mcp.Description("Number of sprints to include (1-12, default 6).")),
	), h.handleGetSprintHistory)

	// --- 4. Tool: get_developer_history ---
	s.AddTool(mcp.NewTool("get_developer_history",
		mcp.WithDescription("Get one developer's DXI trajectory across recent sprints."),
		mcp.WithString("developer", mcp.Description("Developer login."), mcp.Required()),
		mcp.WithNumber("count", mcp.Description("Number of sprints to include (1-12, default 6).")),
	), h.handleGetDeveloperHistory)

	// --- 5. Tool: get_store_stats ---
	s.AddTool(mcp.NewTool("get_store_stats",
		mcp.WithDescription("Get the sprint store's entry inventory and sizes."),
	), h.handleGetStoreStats)

	return s
}

// StartMCPServer starts the opendxi MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, svc *core.Service) error {
	s := NewMCPServer(baseCfg, svc)
	return server.ServeStdio(s)
}
