package generator

import (
	"os"
	"time"
)

// StringSetting reads a string, expanding ${VAR} references.
func StringSetting(settings map[string]interface{}, key, def string) string {
	if v, ok := settings[key].(string); ok && v != "" {
		return os.ExpandEnv(v)
	}
	return def
}

// IntSetting reads an integer written as any numeric YAML/JSON value.
func IntSetting(settings map[string]interface{}, key string, def int) int {
	switch v := settings[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// FloatSetting reads a float written as any numeric value.
func FloatSetting(settings map[string]interface{}, key string, def float64) float64 {
	switch v := settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// DurationSetting reads a duration string ("30s") or a number of seconds.
func DurationSetting(settings map[string]interface{}, key string, def time.Duration) time.Duration {
	switch v := settings[key].(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return def
}
