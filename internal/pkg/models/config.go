package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Tracking TrackingConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	Username       string
	Password       string
	Database       string
	SSLMode        string
	MaxConns       int
	IdleConns      int
	MigrationsPath string
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration.
// An empty URL runs the live feed in single-instance mode.
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
}

// TrackingConfig contains live tracking tunables
type TrackingConfig struct {
	MaxSamples          int           // hard cap on samples read per route request
	MaxRoutePoints      int           // cap on points returned in a route
	PollInterval        time.Duration // recommended client poll interval
	StaleGraceFactor    float64       // STALE after PollInterval * StaleGraceFactor without samples
	StartGrace          time.Duration // origin replaces first sample when tracking started this late
	MaxClockSkew        time.Duration // how far in the future a device timestamp may be
	PlaceholderSpeedKmh float64       // used for duration estimates without samples
	SubscriberBuffer    int           // per-viewer live feed buffer
	StaleSweepSpec      string        // cron spec for the staleness sweep
	GeohashPrecision    uint
}

// StaleAfter returns how long a trip may go without samples before it is STALE
func (t TrackingConfig) StaleAfter() time.Duration {
	return time.Duration(float64(t.PollInterval) * t.StaleGraceFactor)
}
