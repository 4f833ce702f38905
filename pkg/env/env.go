// Package env reads one-off process environment values that sit outside the
// envconfig-managed AppConfig, such as LOG_FORMAT and the platform PORT.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
