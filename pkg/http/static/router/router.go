package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	motmedelHttpContext "github.com/Motmedel/static_server_go/pkg/http/context"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	muxTypesRateLimiting "github.com/Motmedel/static_server_go/pkg/http/mux/types/rate_limiting"
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
	muxTypesResponseWriter "github.com/Motmedel/static_server_go/pkg/http/mux/types/response_writer"
	"github.com/Motmedel/static_server_go/pkg/http/static/file_server"
	"github.com/Motmedel/static_server_go/pkg/http/static/health"
	"github.com/Motmedel/static_server_go/pkg/http/static/path_resolver"
	"github.com/Motmedel/static_server_go/pkg/http/static/security_headers"
	motmedelLogError "github.com/Motmedel/static_server_go/pkg/log/error"
	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-Id"

type Router struct {
	Resolver                  *path_resolver.Resolver
	FileServer                *file_server.FileServer
	Health                    *health.Endpoint
	RateLimitingConfiguration *muxTypesRateLimiting.RateLimitingConfiguration
	Logger                    *slog.Logger
}

func (router *Router) logger() *slog.Logger {
	if router.Logger != nil {
		return router.Logger
	}
	return slog.Default()
}

func makeTooManyRequestsResponse(retryAfter time.Duration) *muxTypesResponse.Response {
	body := []byte("429 Too Many Requests")
	return &muxTypesResponse.Response{
		StatusCode: http.StatusTooManyRequests,
		Headers: append(
			[]*muxTypesResponse.HeaderEntry{
				{Name: "Content-Type", Value: "text/plain"},
				{Name: "Content-Length", Value: strconv.Itoa(len(body))},
				{Name: "Retry-After", Value: strconv.Itoa(int(math.Ceil(retryAfter.Seconds())))},
			},
			security_headers.Headers()...,
		),
		Body: body,
	}
}

// route returns the response for the request's raw path. The error, when
// non-nil, describes why a non-200 response was chosen and is meant for logging.
func (router *Router) route(ctx context.Context, rawPath string) (*muxTypesResponse.Response, error) {
	normalizedPath, err := path_resolver.Normalize(rawPath)
	if err != nil {
		return file_server.MakeNotFoundResponse(), fmt.Errorf("path resolver normalize: %w", err)
	}

	if normalizedPath == health.Path {
		if router.Health == nil {
			return file_server.MakeInternalServerErrorResponse(), motmedelErrors.NewWithTrace(muxErrors.ErrNilHealthEndpoint)
		}
		response, err := router.Health.Serve()
		if err != nil {
			return file_server.MakeInternalServerErrorResponse(), fmt.Errorf("health serve: %w", err)
		}
		return response, nil
	}

	if router.Resolver == nil {
		return file_server.MakeInternalServerErrorResponse(), motmedelErrors.NewWithTrace(muxErrors.ErrNilResolver)
	}

	resolvedPath, err := router.Resolver.Resolve(rawPath)
	if err != nil {
		return file_server.MakeNotFoundResponse(), fmt.Errorf("path resolver resolve: %w", err)
	}

	return router.FileServer.Serve(ctx, resolvedPath)
}

func (router *Router) ServeHTTP(responseWriter http.ResponseWriter, request *http.Request) {
	requestId := uuid.NewString()
	requestPath := request.RequestURI
	if requestPath == "" {
		requestPath = request.URL.RequestURI()
	}

	ctx := motmedelHttpContext.WithRequestId(request.Context(), requestId)
	ctx = motmedelHttpContext.WithRequestInfo(
		ctx,
		&motmedelHttpContext.RequestInfo{
			Method:     request.Method,
			Path:       requestPath,
			RemoteAddr: request.RemoteAddr,
		},
	)

	wrappedResponseWriter := &muxTypesResponseWriter.ResponseWriter{
		ResponseWriter: responseWriter,
		IsHeadRequest:  request.Method == http.MethodHead,
	}
	wrappedResponseWriter.Header().Set(RequestIdHeader, requestId)

	logger := router.logger()

	var response *muxTypesResponse.Response
	var routeErr error

	allowed, retryAfter, err := router.RateLimitingConfiguration.Claim(request)
	switch {
	case err != nil:
		// The rate limiting key could not be derived; serve the request anyway.
		motmedelLogError.LogWarning(ctx, "The rate limiting key could not be obtained.", err, logger)
		response, routeErr = router.route(ctx, request.URL.RequestURI())
	case !allowed:
		response = makeTooManyRequestsResponse(retryAfter)
	default:
		response, routeErr = router.route(ctx, request.URL.RequestURI())
	}

	if err := wrappedResponseWriter.WriteResponse(response); err != nil {
		motmedelLogError.LogError(ctx, "An error occurred when writing the response.", err, logger)
	}

	statusCode := wrappedResponseWriter.WrittenStatusCode
	message := fmt.Sprintf("%d: %s %s", statusCode, request.Method, requestPath)

	switch {
	case errors.Is(routeErr, muxErrors.ErrTraversal), errors.Is(routeErr, muxErrors.ErrMalformedPath):
		motmedelLogError.LogWarning(
			ctx,
			fmt.Sprintf("Security: Blocked path traversal attempt: %s", requestPath),
			routeErr,
			logger,
		)
	case routeErr != nil:
		motmedelLogError.LogError(ctx, fmt.Sprintf("Error serving %s.", requestPath), routeErr, logger)
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		logger.ErrorContext(ctx, message)
	case statusCode >= http.StatusBadRequest:
		logger.WarnContext(ctx, message)
	default:
		logger.InfoContext(ctx, message)
	}
}
