package context

import (
	"context"
)

type errorContextType struct{}

var ErrorContextKey errorContextType

func WithError(ctx context.Context, err error) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ErrorContextKey, err)
}
