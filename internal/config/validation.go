package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey checks an optional key's prefix and length. An empty key
// is accepted; backends that need one check for it when they are created.
func ValidateAPIKey(apiKey, name, prefix string, minLen int) error {
	if apiKey == "" {
		return nil
	}
	if prefix != "" && !strings.HasPrefix(apiKey, prefix) {
		return fmt.Errorf("invalid %s format: must start with '%s'", name, prefix)
	}
	if len(apiKey) < minLen {
		return fmt.Errorf("invalid %s format: too short", name)
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePowerOfTwo validates FFT sizes
func ValidatePowerOfTwo(n int, name string) error {
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("%s must be a positive power of two, got %d", name, n)
	}
	return nil
}
