package config

import (
	"os"
	"strconv"
)

// setDefault assigns fallback when *dest holds the zero value.
func setDefault[T comparable](dest *T, fallback T) {
	var zero T
	if *dest == zero {
		*dest = fallback
	}
}

// overlay copies value into *dest when value is non-zero.
func overlay[T comparable](dest *T, value T) {
	var zero T
	if value != zero {
		*dest = value
	}
}

// fromEnv copies the named environment variable into *dest when set.
func fromEnv(dest *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dest = v
	}
}

// fromEnvInt copies the named environment variable into *dest when it
// is set and parses as an integer.
func fromEnvInt(dest *int, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dest = n
		}
	}
}
