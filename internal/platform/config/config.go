// Package config builds the immutable configuration value handed to the rest
// of the service at construction time. Nothing here is mutated after FromEnv
// returns; components receive the pieces they need and keep no env access.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the top-level service configuration.
type Config struct {
	Addr        string
	PostgresURL string
	Redis       RedisConfig
	Scoring     ScoringConfig
	Quorum      QuorumConfig
	Sources     SourcesConfig
	JWT         JWTConfig
	Kafka       KafkaConfig
}

// RedisConfig configures the verification-run status cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ScoringConfig configures the external investment-scoring client.
type ScoringConfig struct {
	URL     string
	Timeout time.Duration
}

// QuorumConfig configures the simulated verifier quorum.
type QuorumConfig struct {
	NodeCount   int
	NodeLatency time.Duration
}

// SourcesConfig holds per-provider base URLs. An empty URL selects the static
// fixture provider so local runs work without upstream services.
type SourcesConfig struct {
	RegistryURL  string
	ValuationURL string
	RiskURL      string
	Timeout      time.Duration
}

// JWTConfig configures owner-identity token validation.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// KafkaConfig configures the verification event sink. Empty brokers disable
// publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:        envOr("ASSETORACLE_ADDR", ":8080"),
		PostgresURL: os.Getenv("ASSETORACLE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("ASSETORACLE_REDIS_URL"),
			PoolSize:     envInt("ASSETORACLE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("ASSETORACLE_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("ASSETORACLE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("ASSETORACLE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("ASSETORACLE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Scoring: ScoringConfig{
			URL:     os.Getenv("SCORING_SERVICE_URL"),
			Timeout: envDuration("SCORING_TIMEOUT", 3*time.Second),
		},
		Quorum: QuorumConfig{
			NodeCount:   envInt("QUORUM_NODE_COUNT", 5),
			NodeLatency: envDuration("QUORUM_NODE_LATENCY", 300*time.Millisecond),
		},
		Sources: SourcesConfig{
			RegistryURL:  os.Getenv("SOURCE_REGISTRY_URL"),
			ValuationURL: os.Getenv("SOURCE_VALUATION_URL"),
			RiskURL:      os.Getenv("SOURCE_RISK_URL"),
			Timeout:      envDuration("SOURCE_TIMEOUT", 5*time.Second),
		},
		JWT: JWTConfig{
			SigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     envOr("JWT_ISSUER", "assetoracle"),
			Audience:   envOr("JWT_AUDIENCE", "assetoracle-api"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_VERIFICATION_TOPIC", "verification.completed"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
