package cmd

import (
	"os"
	"strconv"
)

// Flag defaults can be overridden through DYNASTY_* environment variables,
// typically loaded from a .env file. Malformed values fall back to the
// built-in default.

func envOrInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return v
}

func envOrInt64(key string, def int64) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}

	return v
}

func envOrFloat(key string, def float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}

	return v
}
