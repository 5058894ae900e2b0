package path_resolver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()

	resolver, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return resolver
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		rawPath     string
		expected    string
		expectedErr error
	}{
		{rawPath: "", expected: ""},
		{rawPath: "/", expected: "/"},
		{rawPath: "/index.html?v=1", expected: "/index.html"},
		{rawPath: "/health?full=true&x=../", expected: "/health"},
		{rawPath: "/a/./b//c.css", expected: "/a/b/c.css"},
		{rawPath: "/a/b/../c.css", expected: "/a/c.css"},
		{rawPath: "/../../etc/passwd", expected: "/etc/passwd"},
		{rawPath: "../../etc/passwd", expected: "etc/passwd"},
		{rawPath: `..\..\secret.txt`, expected: "secret.txt"},
		{rawPath: "/%2e%2e/%2e%2e/etc/passwd", expected: "/etc/passwd"},
		{rawPath: "/my%20file.txt", expected: "/my file.txt"},
		{rawPath: "/bad%zzescape", expectedErr: muxErrors.ErrMalformedPath},
		{rawPath: "/nul%00byte", expectedErr: muxErrors.ErrMalformedPath},
	}

	for _, testCase := range testCases {
		t.Run(testCase.rawPath, func(t *testing.T) {
			normalizedPath, err := Normalize(testCase.rawPath)
			if testCase.expectedErr != nil {
				if !errors.Is(err, testCase.expectedErr) {
					t.Fatalf("got error %v, expected %v", err, testCase.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if normalizedPath != testCase.expected {
				t.Errorf("got %q, expected %q", normalizedPath, testCase.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	resolver := newResolver(t)
	root := resolver.Root()

	testCases := []struct {
		name        string
		rawPath     string
		expected    string
		expectedErr error
	}{
		{name: "root", rawPath: "/", expected: filepath.Join(root, "index.html")},
		{name: "empty", rawPath: "", expected: filepath.Join(root, "index.html")},
		{name: "root with query", rawPath: "/?lang=en", expected: filepath.Join(root, "index.html")},
		{name: "file", rawPath: "/css/site.css", expected: filepath.Join(root, "css", "site.css")},
		{name: "leading traversal", rawPath: "/../../etc/passwd", expected: filepath.Join(root, "etc", "passwd")},
		{name: "encoded traversal", rawPath: "/%2e%2e/%2e%2e/etc/passwd", expected: filepath.Join(root, "etc", "passwd")},
		{name: "bare parent", rawPath: "..", expectedErr: muxErrors.ErrTraversal},
		{name: "encoded bare parent", rawPath: "%2e%2e", expectedErr: muxErrors.ErrTraversal},
		{name: "malformed", rawPath: "/%", expectedErr: muxErrors.ErrMalformedPath},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			resolvedPath, err := resolver.Resolve(testCase.rawPath)
			if testCase.expectedErr != nil {
				if !errors.Is(err, testCase.expectedErr) {
					t.Fatalf("got error %v, expected %v", err, testCase.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if resolvedPath != testCase.expected {
				t.Errorf("got %q, expected %q", resolvedPath, testCase.expected)
			}
		})
	}
}

func TestResolveNeverEscapesRoot(t *testing.T) {
	resolver := newResolver(t)
	root := resolver.Root()

	prefixes := []string{"", "/", "./", "/./", "%2f"}
	segments := []string{"../", `..\`, "%2e%2e/", "..%2f", "%2e%2e%2f", "a/../", "./"}
	suffixes := []string{"", "etc/passwd", "..", "index.html", "?q=../../x", "a/b/../../../.."}

	for _, prefix := range prefixes {
		for _, segment := range segments {
			for count := 0; count <= 6; count++ {
				for _, suffix := range suffixes {
					rawPath := prefix + strings.Repeat(segment, count) + suffix

					resolvedPath, err := resolver.Resolve(rawPath)
					if err != nil {
						if !errors.Is(err, muxErrors.ErrTraversal) && !errors.Is(err, muxErrors.ErrMalformedPath) {
							t.Errorf("%q: unexpected error: %v", rawPath, err)
						}
						continue
					}

					relativePath, err := filepath.Rel(root, resolvedPath)
					if err != nil || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
						t.Errorf("%q resolved outside the root: %q", rawPath, resolvedPath)
					}
				}
			}
		}
	}
}

func TestResolveSiblingPrefix(t *testing.T) {
	parent := t.TempDir()

	resolver, err := New(filepath.Join(parent, "public"), "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if !resolver.contains(filepath.Join(parent, "public", "x")) {
		t.Errorf("expected a descendant to be contained")
	}
	if resolver.contains(filepath.Join(parent, "public-evil", "x")) {
		t.Errorf("expected a sibling sharing the root prefix not to be contained")
	}
}

func TestNew(t *testing.T) {
	if _, err := New("", ""); !errors.Is(err, muxErrors.ErrEmptyRoot) {
		t.Errorf("got error %v, expected %v", err, muxErrors.ErrEmptyRoot)
	}

	resolver, err := New("relative/public", "home.html")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !filepath.IsAbs(resolver.Root()) {
		t.Errorf("expected an absolute root, got %q", resolver.Root())
	}
	if resolver.DefaultResource != "home.html" {
		t.Errorf("got default resource %q, expected %q", resolver.DefaultResource, "home.html")
	}

	var nilResolver *Resolver
	if _, err := nilResolver.Resolve("/"); !errors.Is(err, muxErrors.ErrNilResolver) {
		t.Errorf("got error %v, expected %v", err, muxErrors.ErrNilResolver)
	}
}
