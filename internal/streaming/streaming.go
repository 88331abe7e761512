// Package streaming provides MCP progress notification support for the
// recommend-engineers tool.
//
// This package enables real-time progress updates during tool execution using the
// standard MCP notifications/progress mechanism. It's designed to be:
//
//   - Backward Compatible: Clients that don't provide a progressToken simply don't
//     receive notifications; the tool executes normally.
//
//   - Non-Intrusive: Handlers can call progress methods without checking if streaming
//     is enabled; the DefaultReporter handles disabled cases as no-ops.
//
//   - Rate Limited: Built-in debouncing prevents notification floods.
//
//   - Configurable: Per-tool configuration controls behavior like partial data sending.
//
// # Basic Usage
//
// cmd/server's handleRecommend injects a reporter into the request context
// before calling the Orchestrator:
//
//	func (h *toolHandler) handleRecommend(ctx context.Context, req *mcp.CallToolRequest, input types.Request) (*mcp.CallToolResult, *types.Response, error) {
//	    ctx, _ = streaming.InjectReporter(ctx, req, "recommend-engineers")
//	    resp, err := h.orch.Recommend(ctx, input.WithDefaults())
//	    ...
//	}
//
// # Using StepReporter
//
// internal/orchestration's pipeline wraps the injected reporter in a
// StepReporter for its fixed eight-stage sequence:
//
//	steps := streaming.NewStepReporter(streaming.GetReporter(ctx), pipelineSteps)
//	steps.StartStep("resolving skill and domain identifiers")
//	// work...
//	steps.CompleteStep("resolved")
//
// # Context Integration
//
// The reporter is carried through context so nested pipeline stages don't
// need it threaded as an explicit parameter:
//
//	ctx, reporter := streaming.InjectReporter(ctx, req, "recommend-engineers")
//
//	// Later, in a nested function:
//	r := streaming.GetReporter(ctx)
//	r.ReportProgress(50, 100, "Halfway done")
//
// # Streaming-Enabled Tools
//
// recommend-engineers is the only tool this server exposes, and it streams
// progress for each of the orchestrator's eight pipeline stages (resolve,
// expand, infer, plan, read, score, diversify, advise).
package streaming

// Version is the streaming package version.
const Version = "1.0.0"

// StreamingEnabledTools lists all tools that support streaming progress notifications.
var StreamingEnabledTools = []string{
	"recommend-engineers",
}
