// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by the key.
// Unset variables return fallback; unparsable ones return fallback and ok=false.
func GetEnvInt(key string, fallback int) (value int, ok bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return fallback, true
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback, false
	}
	return v, true
}

// GetEnvFloat returns the float value of the environment variable named by the key.
// Unset variables return fallback; unparsable ones return fallback and ok=false.
func GetEnvFloat(key string, fallback float64) (value float64, ok bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return fallback, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback, false
	}
	return v, true
}

// GetEnvBool returns the boolean value of the environment variable named by the key.
// Accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, fallback bool) (value bool, ok bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return fallback, true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback, false
	}
	return v, true
}
