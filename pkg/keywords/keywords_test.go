package keywords

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name             string
		document         string
		expectedKeywords []string
		expectedErr      error
	}{
		{
			name: "keywords",
			document: `<!DOCTYPE html><html><head>
<meta charset="utf-8">
<meta name="keywords" content="static, server, go">
</head><body></body></html>`,
			expectedKeywords: []string{"static", "server", "go"},
		},
		{
			name:             "self closing and mixed case",
			document:         `<html><head><META NAME="Keywords" CONTENT=" a ,b,, c " /></head></html>`,
			expectedKeywords: []string{"a", "b", "c"},
		},
		{
			name: "first non-empty tag",
			document: `<head><meta name="keywords" content="  ">
<meta name="keywords" content="second"></head>`,
			expectedKeywords: []string{"second"},
		},
		{
			name:        "no keywords",
			document:    `<html><head><meta name="description" content="nothing"></head></html>`,
			expectedErr: ErrNoKeywordsMeta,
		},
		{
			name:        "empty document",
			document:    "",
			expectedErr: ErrNoKeywordsMeta,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := Extract(strings.NewReader(testCase.document))
			if !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("got error %v, expected %v", err, testCase.expectedErr)
			}
			if testCase.expectedErr != nil {
				return
			}

			if diff := cmp.Diff(testCase.expectedKeywords, result.Keywords); diff != "" {
				t.Errorf("keywords mismatch (-expected +got):\n%s", diff)
			}
			if !strings.HasPrefix(result.Tag, "<meta") {
				t.Errorf("got tag %q, expected a meta tag", result.Tag)
			}
		})
	}
}

func TestExtractNilReader(t *testing.T) {
	if _, err := Extract(nil); !errors.Is(err, ErrNilReader) {
		t.Errorf("got error %v, expected %v", err, ErrNilReader)
	}
}
