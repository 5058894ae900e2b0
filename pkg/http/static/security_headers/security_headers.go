package security_headers

import (
	muxTypesResponse "github.com/Motmedel/static_server_go/pkg/http/mux/types/response"
)

var entries = [...]muxTypesResponse.HeaderEntry{
	{Name: "X-Content-Type-Options", Value: "nosniff"},
	{Name: "X-Frame-Options", Value: "SAMEORIGIN"},
	{Name: "X-XSS-Protection", Value: "1; mode=block"},
	{Name: "Referrer-Policy", Value: "strict-origin-when-cross-origin"},
	{Name: "Permissions-Policy", Value: "geolocation=(), microphone=(), camera=()"},
}

// Headers returns fresh copies of the security header entries, so callers may
// not alter the process-wide set.
func Headers() []*muxTypesResponse.HeaderEntry {
	headers := make([]*muxTypesResponse.HeaderEntry, len(entries))
	for i := range entries {
		entry := entries[i]
		headers[i] = &entry
	}
	return headers
}
