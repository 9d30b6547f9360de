package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaChatTopic   string
	FixturesDir      string
	SessionTTL       time.Duration
	SnapshotInterval time.Duration
}

// Load parses configuration from the current environment. Mongo and Kafka are
// optional: without them the service runs on the in-memory snapshot store and
// a no-op notifier.
func Load() (Config, error) {
	cfg := Config{
		Env:            getEnv("APP_ENV", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", "roomfinder"),
		KafkaChatTopic: getEnv("KAFKA_CHAT_TOPIC", "roomfinder.chat"),
		FixturesDir:    getEnv("FIXTURES_DIR", "fixtures"),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	snapshotInterval, err := parseDurationEnv("SNAPSHOT_INTERVAL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.SnapshotInterval = snapshotInterval

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
