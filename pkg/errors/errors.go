package errors

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

func CollectWrappedErrors(err error) []error {
	var results []error

	queue := []error{err}

	for len(queue) > 0 {
		poppedErr := queue[0]
		queue = queue[1:]

		if poppedErr == nil {
			continue
		}

		if poppedErr != err {
			results = append(results, poppedErr)
		}

		switch typedErr := poppedErr.(type) {
		case interface{ Unwrap() error }:
			unwrappedErr := typedErr.Unwrap()
			if unwrappedErr == nil {
				continue
			}

			queue = append(queue, unwrappedErr)
		case interface{ Unwrap() []error }:
			for _, unwrappedErr := range typedErr.Unwrap() {
				if unwrappedErr == nil {
					continue
				}

				queue = append(queue, unwrappedErr)
			}
		}
	}

	return results
}

func removeFunctionFromStackTrace(stackTrace, funcName string) string {
	lines := strings.Split(stackTrace, "\n")
	filtered := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		// A matching function line is followed by its file/line line; skip both.
		if strings.HasPrefix(lines[i], funcName+"(") {
			i++
		} else {
			filtered = append(filtered, lines[i])
		}
	}
	return strings.Join(filtered, "\n")
}

func getFunctionName(f any) string {
	return runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
}

func CaptureStackTrace() string {
	buf := make([]byte, 64<<10)
	return strings.TrimSpace(
		removeFunctionFromStackTrace(string(buf[:runtime.Stack(buf, false)]), getFunctionName(CaptureStackTrace)),
	)
}

type IdErrorI interface {
	Error() string
	GetId() string
}

type StackTraceErrorI interface {
	Error() string
	GetStackTrace() string
}

type InputErrorI interface {
	Error() string
	GetInput() any
}

type ExtendedError struct {
	error
	Input      any
	Id         string
	StackTrace string
}

func (err *ExtendedError) GetInput() any {
	return err.Input
}

func (err *ExtendedError) GetId() string {
	return err.Id
}

func (err *ExtendedError) GetStackTrace() string {
	return err.StackTrace
}

func (err *ExtendedError) Unwrap() error {
	return err.error
}

// New makes an *ExtendedError from e, which is expected to be an error or a string.
func New(e any, input ...any) *ExtendedError {
	var err error

	switch typedE := e.(type) {
	case error:
		err = typedE
	case string:
		err = errors.New(typedE)
	default:
		err = fmt.Errorf("%v", typedE)
	}

	var errInput any = input
	switch len(input) {
	case 0:
		errInput = nil
	case 1:
		errInput = input[0]
	}

	return &ExtendedError{error: err, Input: errInput}
}

func NewWithTrace(e any, input ...any) *ExtendedError {
	extendedErr := New(e, input...)
	extendedErr.StackTrace = removeFunctionFromStackTrace(
		CaptureStackTrace(),
		getFunctionName(NewWithTrace),
	)

	return extendedErr
}

func IsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
