package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. FromEnv keeps main lean; each
// optional subsystem (redis cache, kafka audit) is enabled by its address
// being set.
type Server struct {
	Addr        string
	DatabaseURL string

	// RedisAddr enables the program catalog cache when non-empty.
	RedisAddr string
	// CatalogCacheTTL bounds staleness of the cached active-program list.
	CatalogCacheTTL time.Duration

	// KafkaBrokers enables the audit outbox publisher when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:            getenv("ENROLLHUB_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CatalogCacheTTL: 5 * time.Minute,
		AuditTopic:      getenv("AUDIT_TOPIC", "enrollhub.audit"),
		ShutdownTimeout: 10 * time.Second,
	}
	if ttl := os.Getenv("CATALOG_CACHE_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cfg.CatalogCacheTTL = parsed
		}
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
