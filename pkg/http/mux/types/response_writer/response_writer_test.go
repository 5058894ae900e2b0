package response_writer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
)

func TestWriteResponse(t *testing.T) {
	response := &muxTypesResponse.Response{
		StatusCode: http.StatusNotFound,
		Headers: []*muxTypesResponse.HeaderEntry{
			{Name: "Content-Type", Value: "text/html"},
			nil,
			{Name: "", Value: "ignored"},
		},
		Body: []byte("<h1>404</h1>"),
	}

	testCases := []struct {
		name               string
		isHeadRequest      bool
		expectedBody       string
		expectedBodyLength int
	}{
		{name: "get", expectedBody: "<h1>404</h1>", expectedBodyLength: len("<h1>404</h1>")},
		{name: "head", isHeadRequest: true, expectedBody: "", expectedBodyLength: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			responseWriter := &ResponseWriter{ResponseWriter: recorder, IsHeadRequest: testCase.isHeadRequest}

			if err := responseWriter.WriteResponse(response); err != nil {
				t.Fatalf("write response: %v", err)
			}

			if recorder.Code != http.StatusNotFound || responseWriter.WrittenStatusCode != http.StatusNotFound {
				t.Errorf("got status codes %d and %d, expected %d", recorder.Code, responseWriter.WrittenStatusCode, http.StatusNotFound)
			}
			if contentType := recorder.Header().Get("Content-Type"); contentType != "text/html" {
				t.Errorf("got Content-Type %q, expected %q", contentType, "text/html")
			}
			if body := recorder.Body.String(); body != testCase.expectedBody {
				t.Errorf("got body %q, expected %q", body, testCase.expectedBody)
			}
			if responseWriter.WrittenBodyLength != testCase.expectedBodyLength {
				t.Errorf("got body length %d, expected %d", responseWriter.WrittenBodyLength, testCase.expectedBodyLength)
			}
		})
	}
}

func TestWriteHeaderOnce(t *testing.T) {
	recorder := httptest.NewRecorder()
	responseWriter := &ResponseWriter{ResponseWriter: recorder}

	responseWriter.WriteHeader(http.StatusTooManyRequests)
	responseWriter.WriteHeader(http.StatusOK)

	if responseWriter.WrittenStatusCode != http.StatusTooManyRequests {
		t.Errorf("got status code %d, expected %d", responseWriter.WrittenStatusCode, http.StatusTooManyRequests)
	}
}

func TestWriteDefaultsStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	responseWriter := &ResponseWriter{ResponseWriter: recorder}

	if err := responseWriter.WriteResponse(&muxTypesResponse.Response{}); err != nil {
		t.Fatalf("write response: %v", err)
	}

	if responseWriter.WrittenStatusCode != http.StatusOK {
		t.Errorf("got status code %d, expected %d", responseWriter.WrittenStatusCode, http.StatusOK)
	}
}

func TestWriteResponseNil(t *testing.T) {
	responseWriter := &ResponseWriter{ResponseWriter: httptest.NewRecorder()}
	if err := responseWriter.WriteResponse(nil); !errors.Is(err, muxErrors.ErrNilResponse) {
		t.Errorf("got error %v, expected %v", err, muxErrors.ErrNilResponse)
	}

	var nilResponseWriter *ResponseWriter
	if err := nilResponseWriter.WriteResponse(&muxTypesResponse.Response{}); !errors.Is(err, muxErrors.ErrNilResponseWriter) {
		t.Errorf("got error %v, expected %v", err, muxErrors.ErrNilResponseWriter)
	}
}
