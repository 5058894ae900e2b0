package env

import (
	"os"
)

// GetFirstEnv returns the value of the first of keys that is set to a
// non-empty value.
func GetFirstEnv(keys ...string) (string, bool) {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value, true
		}
	}
	return "", false
}
