package errors

import (
	"errors"
)

var (
	ErrNilResponseWriter = errors.New("nil response writer")
	ErrNilResponse       = errors.New("nil response")
	ErrNilHttpRequest    = errors.New("nil http request")
	ErrNilResolver       = errors.New("nil path resolver")
	ErrNilFileServer     = errors.New("nil file server")
	ErrNilHealthEndpoint = errors.New("nil health endpoint")
	ErrNilFileReader     = errors.New("nil file reader")
	ErrTraversal         = errors.New("path escapes the root directory")
	ErrMalformedPath     = errors.New("malformed request path")
	ErrIsDirectory       = errors.New("path is a directory")
	ErrEmptyRoot         = errors.New("empty root directory")
)
