package config

import "time"

// DaemonConfig holds the refresh daemon configuration
type DaemonConfig struct {
	// How often a fresh snapshot is fetched and enriched
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// How often contract data is mirrored into the shared store
	MirrorInterval time.Duration `mapstructure:"mirror_interval"`
}

// FeedConfig holds the render feed server configuration
type FeedConfig struct {
	// Listen address for the websocket feed
	Address string `mapstructure:"address" validate:"required"`

	// URL path renderer clients connect to
	Path string `mapstructure:"path"`
}
