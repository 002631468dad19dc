package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hazyhaar/csvnorm/pkg/kit"
	"github.com/hazyhaar/csvnorm/pkg/stream"
)

// Shared request/response types used by both HTTP and MCP transports.

type normalizeReq struct {
	Data string
}

type normalizeResp struct {
	Data    string `json:"data"`
	Read    int    `json:"read"`
	Emitted int    `json:"emitted"`
	Dropped int    `json:"dropped"`
	Headers int    `json:"headers"`
}

// maxPayload bounds one normalize request. The stdin filter handles bulk
// work; the API is for interactive-sized payloads.
const maxPayload = 10 * 1024 * 1024

func normalizeEndpoint(proc *stream.Processor) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		if req.Data == "" {
			return nil, fmt.Errorf("empty payload")
		}

		var out strings.Builder
		stats, err := proc.Run(ctx, strings.NewReader(req.Data), &out)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		return &normalizeResp{
			Data:    out.String(),
			Read:    stats.Read,
			Emitted: stats.Emitted,
			Dropped: stats.Dropped,
			Headers: stats.Headers,
		}, nil
	}
}

// loggingMiddleware records endpoint latency and transport on the logger.
func loggingMiddleware(logger *slog.Logger) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			logger.Debug("endpoint",
				"transport", kit.GetTransport(ctx),
				"request_id", kit.GetRequestID(ctx),
				"duration", time.Since(start),
				"error", err)
			return resp, err
		}
	}
}
