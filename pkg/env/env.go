package env

import "os"

// Get reads an environment variable, treating unset and empty the same and
// falling back to the provided default.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
