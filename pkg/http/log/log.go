package log

import (
	"context"
	"log/slog"

	motmedelHttpContext "github.com/Motmedel/static_server_go/pkg/http/context"
)

// HttpContextExtractor adds the request id and request line of the request
// carried in the context to the record.
type HttpContextExtractor struct{}

func (httpContextExtractor *HttpContextExtractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	var requestAttrs []any
	if requestId := motmedelHttpContext.GetRequestId(ctx); requestId != "" {
		requestAttrs = append(requestAttrs, slog.String("id", requestId))
	}

	requestInfo, _ := ctx.Value(motmedelHttpContext.RequestInfoContextKey).(*motmedelHttpContext.RequestInfo)
	if requestInfo != nil && requestInfo.Method != "" {
		requestAttrs = append(requestAttrs, slog.String("method", requestInfo.Method))
	}

	if len(requestAttrs) != 0 {
		record.Add(slog.Group("http", slog.Group("request", requestAttrs...)))
	}

	if requestInfo != nil {
		if requestInfo.Path != "" {
			record.Add(slog.Group("url", slog.String("path", requestInfo.Path)))
		}
		if requestInfo.RemoteAddr != "" {
			record.Add(slog.Group("client", slog.String("address", requestInfo.RemoteAddr)))
		}
	}

	return nil
}
