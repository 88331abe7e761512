package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talentgraph/recommender/internal/apivalidate"
	"github.com/talentgraph/recommender/internal/orchestration"
	"github.com/talentgraph/recommender/internal/streaming"
	"github.com/talentgraph/recommender/internal/types"
)

// toolName is the one MCP tool this server registers; recommend-engineers
// streaming notifications are keyed off it in internal/streaming.ToolConfigs.
const toolName = "recommend-engineers"

// registerTools wires every MCP tool this server exposes against orch.
func registerTools(mcpServer *mcp.Server, components *ServerComponents) {
	handler := &toolHandler{orch: components.Orchestrator}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        toolName,
		Description: "Recommend engineers matching a hiring request's constraints, or ranked by similarity to a named reference engineer",
	}, handler.handleRecommend)
}

type toolHandler struct {
	orch *orchestration.Orchestrator
}

// handleRecommend validates the inbound request, runs it through the
// Orchestrator, and returns the resulting Response. A validation failure
// is returned as an error before the orchestrator is ever invoked, so a
// bad request never reaches the GraphStore.
//
// If the client supplied a progress token, ctx carries a reporter the
// orchestrator's pipeline uses to notify on each of its eight stages; a
// client that didn't ask for streaming gets the no-op DefaultReporter and
// pays nothing extra.
func (h *toolHandler) handleRecommend(ctx context.Context, req *mcp.CallToolRequest, input types.Request) (*mcp.CallToolResult, *types.Response, error) {
	if err := apivalidate.Validate(input); err != nil {
		return nil, nil, err
	}

	ctx, _ = streaming.InjectReporter(ctx, req, toolName)

	resp, err := h.orch.Recommend(ctx, input.WithDefaults())
	if err != nil {
		return nil, nil, err
	}
	return nil, resp, nil
}
