package api

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/csvnorm/pkg/kit"
	"github.com/hazyhaar/csvnorm/pkg/stream"
)

// RegisterMCPTools registers the csvnorm MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, proc *stream.Processor, logger *slog.Logger) {
	endpoint := kit.Chain(loggingMiddleware(logger))(normalizeEndpoint(proc))

	tool := mcp.NewTool("normalize_rows",
		mcp.WithDescription("Sanitize CSV rows: repair UTF-8, normalize timestamps to fixed-offset ISO 8601, uppercase names, convert H:MM:SS durations to seconds. Unrepairable rows are dropped."),
		mcp.WithString("data", mcp.Required(), mcp.Description("CSV text, one 8-column record per line")),
	)

	kit.RegisterMCPTool(srv, tool, endpoint, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		data, _ := args["data"].(string)
		return &kit.MCPDecodeResult{
			Request: &normalizeReq{Data: data},
			EnrichCtx: func(ctx context.Context) context.Context {
				ctx = kit.WithTransport(ctx, "mcp")
				return kit.WithRequestID(ctx, uuid.NewString())
			},
		}, nil
	})
}
