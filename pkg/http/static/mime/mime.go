package mime

import (
	"path/filepath"
	"strings"
)

const DefaultContentType = "application/octet-stream"

var table = map[string]string{
	".html":  "text/html",
	".css":   "text/css",
	".js":    "text/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".txt":   "text/plain",
	".xml":   "application/xml",
}

// ContentType returns the content type for the extension of path, falling
// back to DefaultContentType.
func ContentType(path string) string {
	if contentType, ok := table[strings.ToLower(filepath.Ext(path))]; ok {
		return contentType
	}
	return DefaultContentType
}
