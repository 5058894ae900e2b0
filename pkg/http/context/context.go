package context

import (
	"context"
)

type requestIdContextType struct{}

var RequestIdContextKey = &requestIdContextType{}

func WithRequestId(parent context.Context, requestId string) context.Context {
	return context.WithValue(parent, RequestIdContextKey, requestId)
}

func GetRequestId(ctx context.Context) string {
	requestId, _ := ctx.Value(RequestIdContextKey).(string)
	return requestId
}

type requestInfoContextType struct{}

var RequestInfoContextKey requestInfoContextType

// RequestInfo is the part of the request that is logged with every record.
type RequestInfo struct {
	Method     string
	Path       string
	RemoteAddr string
}

func WithRequestInfo(parent context.Context, requestInfo *RequestInfo) context.Context {
	return context.WithValue(parent, RequestInfoContextKey, requestInfo)
}
