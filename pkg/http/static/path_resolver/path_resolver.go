package path_resolver

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
)

const DefaultResource = "index.html"

// StripQuery removes everything from the first '?' onward.
func StripQuery(rawPath string) string {
	if queryIndex := strings.IndexByte(rawPath, '?'); queryIndex != -1 {
		return rawPath[:queryIndex]
	}
	return rawPath
}

func stripLeadingParentSegments(p string) string {
	for strings.HasPrefix(p, "../") || strings.HasPrefix(p, `..\`) {
		p = p[3:]
	}
	return p
}

// Normalize strips the query string, percent-decodes the path, collapses
// `.`, `..` and redundant separators, and removes any leading `../` or `..\`
// segments. It is a best-effort pre-clean; containment is checked by
// Resolver.Resolve.
func Normalize(rawPath string) (string, error) {
	escapedPath := StripQuery(rawPath)

	unescapedPath, err := url.PathUnescape(escapedPath)
	if err != nil {
		return "", motmedelErrors.New(
			fmt.Errorf("%w: url path unescape: %w", muxErrors.ErrMalformedPath, err),
			escapedPath,
		)
	}

	if strings.IndexByte(unescapedPath, 0) != -1 {
		return "", motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: nul byte", muxErrors.ErrMalformedPath),
			escapedPath,
		)
	}

	if unescapedPath == "" {
		return "", nil
	}

	normalizedPath := path.Clean(unescapedPath)
	if normalizedPath == "." {
		return "", nil
	}

	return stripLeadingParentSegments(normalizedPath), nil
}

type Resolver struct {
	root            string
	DefaultResource string
}

func New(root string, defaultResource string) (*Resolver, error) {
	if root == "" {
		return nil, motmedelErrors.NewWithTrace(muxErrors.ErrEmptyRoot)
	}

	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("filepath abs: %w", err), root)
	}

	if defaultResource == "" {
		defaultResource = DefaultResource
	}

	return &Resolver{root: filepath.Clean(absoluteRoot), DefaultResource: defaultResource}, nil
}

func (resolver *Resolver) Root() string {
	return resolver.root
}

func (resolver *Resolver) contains(candidate string) bool {
	root := resolver.root
	if candidate == root {
		return true
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return strings.HasPrefix(candidate, root)
	}
	return strings.HasPrefix(candidate, root+string(filepath.Separator))
}

// Resolve turns a raw request path into an absolute filesystem path below the
// root directory. A path that would escape the root yields an error wrapping
// ErrTraversal; an unparseable one yields an error wrapping ErrMalformedPath.
func (resolver *Resolver) Resolve(rawPath string) (string, error) {
	if resolver == nil {
		return "", motmedelErrors.NewWithTrace(muxErrors.ErrNilResolver)
	}

	normalizedPath, err := Normalize(rawPath)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	if normalizedPath == "" || normalizedPath == "/" {
		normalizedPath = "/" + resolver.DefaultResource
	}

	candidate := filepath.Clean(filepath.Join(resolver.root, filepath.FromSlash(normalizedPath)))
	if !resolver.contains(candidate) {
		return "", motmedelErrors.New(muxErrors.ErrTraversal, rawPath)
	}

	return candidate, nil
}
