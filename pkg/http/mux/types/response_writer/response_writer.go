package response_writer

import (
	"fmt"
	"net/http"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
)

type ResponseWriter struct {
	http.ResponseWriter
	IsHeadRequest     bool
	WriteHeaderCalled bool

	WrittenStatusCode int
	WrittenBodyLength int
}

func (responseWriter *ResponseWriter) WriteHeader(statusCode int) {
	if responseWriter.WriteHeaderCalled {
		return
	}
	responseWriter.WriteHeaderCalled = true
	responseWriter.WrittenStatusCode = statusCode
	responseWriter.ResponseWriter.WriteHeader(statusCode)
}

func (responseWriter *ResponseWriter) Write(data []byte) (int, error) {
	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}

	if responseWriter.IsHeadRequest || len(data) == 0 {
		return 0, nil
	}

	n, err := responseWriter.ResponseWriter.Write(data)
	responseWriter.WrittenBodyLength += n
	if err != nil {
		return n, motmedelErrors.NewWithTrace(fmt.Errorf("http response writer write: %w", err))
	}

	return n, nil
}

func (responseWriter *ResponseWriter) WriteResponse(response *muxTypesResponse.Response) error {
	if responseWriter == nil {
		return motmedelErrors.NewWithTrace(muxErrors.ErrNilResponseWriter)
	}

	if response == nil {
		return motmedelErrors.NewWithTrace(muxErrors.ErrNilResponse)
	}

	responseWriterHeader := responseWriter.Header()
	for _, header := range response.Headers {
		if header == nil || header.Name == "" {
			continue
		}
		responseWriterHeader.Set(header.Name, header.Value)
	}

	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	responseWriter.WriteHeader(statusCode)

	if _, err := responseWriter.Write(response.Body); err != nil {
		return fmt.Errorf("response writer write: %w", err)
	}

	return nil
}
