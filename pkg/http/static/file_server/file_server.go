package file_server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
	"github.com/Motmedel/static_server_go/pkg/http/static/content_cache"
	"github.com/Motmedel/static_server_go/pkg/http/static/mime"
	"github.com/Motmedel/static_server_go/pkg/http/static/security_headers"
)

const CacheControl = "public, max-age=86400"

var NotFoundPage = []byte(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>404 - Page not found</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            background: linear-gradient(135deg, #0A0E27 0%, #1a1f3a 100%);
            color: white;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            text-align: center;
        }
        h1 {
            font-size: 120px;
            margin: 0;
        }
        a {
            color: #6EAF3D;
            border: 2px solid #6EAF3D;
            padding: 10px 20px;
            border-radius: 5px;
            text-decoration: none;
        }
    </style>
</head>
<body>
    <main>
        <h1>404</h1>
        <p>The page could not be found.</p>
        <a href="/">Back to the front page</a>
    </main>
</body>
</html>
`)

var InternalServerErrorBody = []byte("500 Internal Server Error")

type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

type FileReaderFunc func(context.Context, string) ([]byte, error)

func (f FileReaderFunc) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

type readResult struct {
	data []byte
	err  error
}

// OsFileReader reads files from the local filesystem on a separate goroutine,
// returning early if the context is done.
type OsFileReader struct{}

func (OsFileReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	resultChannel := make(chan readResult, 1)

	go func() {
		fileInfo, err := os.Stat(path)
		if err != nil {
			resultChannel <- readResult{err: fmt.Errorf("os stat: %w", err)}
			return
		}
		if fileInfo.IsDir() {
			resultChannel <- readResult{err: muxErrors.ErrIsDirectory}
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("os read file: %w", err)
		}
		resultChannel <- readResult{data: data, err: err}
	}()

	select {
	case result := <-resultChannel:
		return result.data, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func baseHeaders(contentType string, contentLength int) []*muxTypesResponse.HeaderEntry {
	return append(
		[]*muxTypesResponse.HeaderEntry{
			{Name: "Content-Type", Value: contentType},
			{Name: "Cache-Control", Value: CacheControl},
			{Name: "Content-Length", Value: strconv.Itoa(contentLength)},
		},
		security_headers.Headers()...,
	)
}

func MakeNotFoundResponse() *muxTypesResponse.Response {
	return &muxTypesResponse.Response{
		StatusCode: http.StatusNotFound,
		Headers:    baseHeaders("text/html", len(NotFoundPage)),
		Body:       NotFoundPage,
	}
}

func MakeInternalServerErrorResponse() *muxTypesResponse.Response {
	return &muxTypesResponse.Response{
		StatusCode: http.StatusInternalServerError,
		Headers: append(
			[]*muxTypesResponse.HeaderEntry{
				{Name: "Content-Type", Value: "text/plain"},
				{Name: "Content-Length", Value: strconv.Itoa(len(InternalServerErrorBody))},
			},
			security_headers.Headers()...,
		),
		Body: InternalServerErrorBody,
	}
}

func makeOkResponse(resolvedPath string, data []byte) *muxTypesResponse.Response {
	return &muxTypesResponse.Response{
		StatusCode: http.StatusOK,
		Headers:    baseHeaders(mime.ContentType(resolvedPath), len(data)),
		Body:       data,
	}
}

type FileServer struct {
	Cache  *content_cache.Cache
	Reader FileReader
}

func New(cache *content_cache.Cache, reader FileReader) *FileServer {
	if reader == nil {
		reader = OsFileReader{}
	}
	return &FileServer{Cache: cache, Reader: reader}
}

// Serve produces the response for a resolved path. A missing file or a
// directory yields the not-found response; any other read failure yields a 500
// response together with the underlying error.
func (fileServer *FileServer) Serve(ctx context.Context, resolvedPath string) (*muxTypesResponse.Response, error) {
	if fileServer == nil {
		return MakeInternalServerErrorResponse(), motmedelErrors.NewWithTrace(muxErrors.ErrNilFileServer)
	}

	reader := fileServer.Reader
	if reader == nil {
		return MakeInternalServerErrorResponse(), motmedelErrors.NewWithTrace(muxErrors.ErrNilFileReader)
	}

	readCtx := ctx
	if fileServer.Cache != nil && fileServer.Cache.Enabled {
		// A cache fill is shared by every waiter on the path.
		readCtx = context.WithoutCancel(ctx)
	}

	data, _, err := fileServer.Cache.Load(resolvedPath, func() ([]byte, error) {
		return reader.ReadFile(readCtx, resolvedPath)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, muxErrors.ErrIsDirectory) {
			return MakeNotFoundResponse(), nil
		}
		return MakeInternalServerErrorResponse(), motmedelErrors.New(
			fmt.Errorf("read file: %w", err),
			resolvedPath,
		)
	}

	return makeOkResponse(resolvedPath, data), nil
}
