package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FeedsConfig describes the GTFS-Realtime endpoints, loaded from feeds.yml.
// Both feeds are optional; an absent feed simply means no live data of that
// kind.
type FeedsConfig struct {
	TripUpdates      *FeedEndpoint `yaml:"trip_updates"`
	VehiclePositions *FeedEndpoint `yaml:"vehicle_positions"`
}

type FeedEndpoint struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

// LoadFeeds reads and validates the realtime feed configuration. A missing
// file is not an error: the planner then runs on schedule data alone.
func LoadFeeds(path string) (*FeedsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FeedsConfig{}, nil
		}
		return nil, fmt.Errorf("reading feeds config: %w", err)
	}

	var cfg FeedsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing feeds config: %w", err)
	}

	v := validator.New()
	for _, ep := range []*FeedEndpoint{cfg.TripUpdates, cfg.VehiclePositions} {
		if ep == nil {
			continue
		}
		if err := v.Struct(ep); err != nil {
			return nil, fmt.Errorf("invalid feeds config: %w", err)
		}
	}

	return &cfg, nil
}
