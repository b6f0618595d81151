package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads the env file for local runs and builds the config from the environment
func InitConfig(configPath string) *models.Config {
	v := newViper()
	if v.GetString("APP_ENV") == "local" {
		// Load config from file
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

const (
	defaultMaxSamples     = 10000
	defaultMaxRoutePoints = 500
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "tracking-service")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("SERVER_PORT", 9994)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MIGRATIONS_PATH", "file://migrations")

	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("JWT_EXPIRATION", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_AGE", 7)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_COMPRESS", true)

	v.SetDefault("TRACKING_MAX_SAMPLES", defaultMaxSamples)
	v.SetDefault("TRACKING_MAX_ROUTE_POINTS", defaultMaxRoutePoints)
	v.SetDefault("TRACKING_POLL_INTERVAL", 20*time.Second)
	v.SetDefault("TRACKING_STALE_GRACE_FACTOR", 3.0)
	v.SetDefault("TRACKING_START_GRACE", 5*time.Minute)
	v.SetDefault("TRACKING_MAX_CLOCK_SKEW", 5*time.Minute)
	v.SetDefault("TRACKING_PLACEHOLDER_SPEED_KMH", 50.0)
	v.SetDefault("TRACKING_SUBSCRIBER_BUFFER", 32)
	v.SetDefault("TRACKING_STALE_SWEEP_CRON", "@every 30s")
	v.SetDefault("TRACKING_GEOHASH_PRECISION", 9)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")
	configs.Database.MigrationsPath = v.GetString("DB_MIGRATIONS_PATH")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NATS config
	configs.NATS.URL = v.GetString("NATS_URL")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")
	configs.Logger.MaxSize = v.GetInt("LOG_MAX_SIZE")
	configs.Logger.MaxAge = v.GetInt("LOG_MAX_AGE")
	configs.Logger.MaxBackups = v.GetInt("LOG_MAX_BACKUPS")
	configs.Logger.Compress = v.GetBool("LOG_COMPRESS")

	// Tracking config
	configs.Tracking.MaxSamples = v.GetInt("TRACKING_MAX_SAMPLES")
	configs.Tracking.MaxRoutePoints = v.GetInt("TRACKING_MAX_ROUTE_POINTS")
	configs.Tracking.PollInterval = v.GetDuration("TRACKING_POLL_INTERVAL")
	configs.Tracking.StaleGraceFactor = v.GetFloat64("TRACKING_STALE_GRACE_FACTOR")
	configs.Tracking.StartGrace = v.GetDuration("TRACKING_START_GRACE")
	configs.Tracking.MaxClockSkew = v.GetDuration("TRACKING_MAX_CLOCK_SKEW")
	configs.Tracking.PlaceholderSpeedKmh = v.GetFloat64("TRACKING_PLACEHOLDER_SPEED_KMH")
	configs.Tracking.SubscriberBuffer = v.GetInt("TRACKING_SUBSCRIBER_BUFFER")
	configs.Tracking.StaleSweepSpec = v.GetString("TRACKING_STALE_SWEEP_CRON")
	configs.Tracking.GeohashPrecision = v.GetUint("TRACKING_GEOHASH_PRECISION")

	clampPollInterval(&configs.Tracking)
	clampReadCaps(&configs.Tracking)

	return configs
}

// clampPollInterval keeps the advertised poll interval inside the 15-30s freshness bound
func clampPollInterval(t *models.TrackingConfig) {
	if t.PollInterval < 15*time.Second {
		log.Printf("Warning: TRACKING_POLL_INTERVAL %s below 15s, using 15s", t.PollInterval)
		t.PollInterval = 15 * time.Second
	} else if t.PollInterval > 30*time.Second {
		log.Printf("Warning: TRACKING_POLL_INTERVAL %s above 30s, using 30s", t.PollInterval)
		t.PollInterval = 30 * time.Second
	}
	if t.StaleGraceFactor < 1 {
		t.StaleGraceFactor = 1
	}
}

// clampReadCaps keeps route reads bounded. A zero or negative cap would read
// nothing or disable the bound, so it falls back to the default.
func clampReadCaps(t *models.TrackingConfig) {
	if t.MaxSamples <= 0 {
		log.Printf("Warning: TRACKING_MAX_SAMPLES %d is not positive, using %d", t.MaxSamples, defaultMaxSamples)
		t.MaxSamples = defaultMaxSamples
	}
	if t.MaxRoutePoints <= 0 {
		log.Printf("Warning: TRACKING_MAX_ROUTE_POINTS %d is not positive, using %d", t.MaxRoutePoints, defaultMaxRoutePoints)
		t.MaxRoutePoints = defaultMaxRoutePoints
	} else if t.MaxRoutePoints < 2 {
		// a polyline needs both ends
		t.MaxRoutePoints = 2
	}
}
