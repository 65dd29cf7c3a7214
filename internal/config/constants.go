package config

import "time"

// Defaults for unset environment variables.
const (
	DefaultPort           = "8080"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultEnvironment    = "dev"
	DefaultBannerFile     = "configs/banners.yaml"
	DefaultReloadInterval = 5 * time.Second
	DefaultDedupeTTL      = 10 * time.Minute
	DefaultDedupeSize     = 10000
	DefaultStartingFates  = 1600
	DefaultWeaponCapacity = 2000
)
