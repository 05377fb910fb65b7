package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	GTFSStatic   GTFSStaticConfig
	GTFSRealtime GTFSRealtimeConfig
	Query        QueryConfig
	Logging      LoggingConfig
}

// GTFSStaticConfig locates the static GTFS schedule
type GTFSStaticConfig struct {
	// Source is a path to a GTFS zip, a directory of extracted .txt
	// files, or an http(s) URL to download the zip from.
	Source   string
	CacheDir string
}

// GTFSRealtimeConfig for real-time GTFS data fetching
type GTFSRealtimeConfig struct {
	FeedsPath   string // path to feeds.yml
	APIKey      string
	CacheMaxAge time.Duration
}

// QueryConfig holds the tunables of the query engine
type QueryConfig struct {
	LookaheadWindow time.Duration
	Timezone        string
}

type LoggingConfig struct {
	Level    string
	FilePath string
}

func Load() (*Config, error) {
	cfg := &Config{
		GTFSStatic: GTFSStaticConfig{
			Source:   getEnv("GTFS_STATIC_SOURCE", ""),
			CacheDir: getEnv("PLANNER_CACHE_DIR", filepath.Join(os.TempDir(), "ptvplanner")),
		},
		GTFSRealtime: GTFSRealtimeConfig{
			FeedsPath:   getEnv("GTFS_RT_FEEDS", "feeds.yml"),
			APIKey:      getEnv("GTFS_RT_API_KEY", ""),
			CacheMaxAge: getDurationEnv("GTFS_RT_CACHE_MAX_AGE", 5*time.Minute),
		},
		Query: QueryConfig{
			LookaheadWindow: getDurationEnv("PLANNER_LOOKAHEAD_WINDOW", 10*time.Minute),
			Timezone:        getEnv("PLANNER_TIMEZONE", "Australia/Melbourne"),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", "ptvplanner.log"),
		},
	}

	if cfg.GTFSStatic.Source == "" {
		return nil, fmt.Errorf("GTFS_STATIC_SOURCE must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
