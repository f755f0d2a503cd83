package config

import (
	"fmt"
	"os"
	"time"
)

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(envPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(envPrefix + key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(envPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(envPrefix + key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
