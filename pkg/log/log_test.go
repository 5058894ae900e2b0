package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	motmedelContext "github.com/Motmedel/static_server_go/pkg/context"
	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	"github.com/google/go-cmp/cmp"
)

func logRecord(t *testing.T, extractor *ErrorContextExtractor, err error) map[string]any {
	t.Helper()

	var buffer bytes.Buffer
	logger := New(slog.NewJSONHandler(&buffer, nil), extractor)
	logger.ErrorContext(motmedelContext.WithError(context.Background(), err), "An error occurred.")

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}

	return record
}

func TestErrorContextExtractor(t *testing.T) {
	err := motmedelErrors.New(fmt.Errorf("os read file: %w", os.ErrNotExist), "/srv/www/missing.html")

	record := logRecord(t, &ErrorContextExtractor{}, err)

	expected := map[string]any{
		"message": "os read file: file does not exist",
		"input": map[string]any{
			"value": "/srv/www/missing.html",
			"type":  "string",
		},
		"cause": map[string]any{
			"message": "file does not exist",
		},
	}

	if diff := cmp.Diff(expected, record["error"]); diff != "" {
		t.Errorf("error attributes mismatch (-expected +got):\n%s", diff)
	}
}

func TestErrorContextExtractorStackTrace(t *testing.T) {
	err := motmedelErrors.NewWithTrace(errors.New("boom"))

	errorAttrs, _ := logRecord(t, &ErrorContextExtractor{}, err)["error"].(map[string]any)
	if stackTrace, _ := errorAttrs["stack_trace"].(string); stackTrace == "" {
		t.Errorf("expected a stack trace, got %v", errorAttrs)
	}

	errorAttrs, _ = logRecord(t, &ErrorContextExtractor{SkipStackTrace: true}, err)["error"].(map[string]any)
	if _, ok := errorAttrs["stack_trace"]; ok {
		t.Errorf("expected no stack trace, got %v", errorAttrs)
	}
}

type customError struct{}

func (customError) Error() string { return "custom" }

func TestErrorContextExtractorType(t *testing.T) {
	errorAttrs, _ := logRecord(t, &ErrorContextExtractor{}, customError{})["error"].(map[string]any)

	expected := map[string]any{"type": "log.customError", "message": "custom"}
	if diff := cmp.Diff(expected, errorAttrs); diff != "" {
		t.Errorf("error attributes mismatch (-expected +got):\n%s", diff)
	}
}

func TestContextHandlerWithoutError(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(slog.NewJSONHandler(&buffer, nil), &ErrorContextExtractor{}, nil)
	logger.With(slog.String("component", "test")).InfoContext(context.Background(), "Hello.")

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}

	if _, ok := record["error"]; ok {
		t.Errorf("expected no error attribute, got %v", record)
	}
	if record["component"] != "test" {
		t.Errorf("expected the component attribute to be kept, got %v", record)
	}
}

func TestContextExtractorFunction(t *testing.T) {
	var buffer bytes.Buffer
	extractor := ContextExtractorFunction(func(ctx context.Context, record *slog.Record) error {
		record.Add(slog.Bool("extracted", true))
		return nil
	})

	New(slog.NewJSONHandler(&buffer, nil), extractor).Info("Hello.")

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if record["extracted"] != true {
		t.Errorf("expected the extracted attribute, got %v", record)
	}
}
