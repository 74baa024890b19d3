package kafka_config

import (
	"errors"
	"fmt"
	"os"
	"postaladdr/pkg/logger"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Topics names the streams the normalizer reads and writes.
type Topics struct {
	Parsed     string
	Normalized string
	GroupID    string
	// DLQ may be empty, in which case failed messages are only logged.
	DLQ string
}

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequiredAcks int // -1 all replicas, 0 none, 1 leader
	Compression  string
}

type ConsumerConfig struct {
	StartOffset    int64 // -1 newest, -2 oldest
	MaxBytes       int
	MaxWait        time.Duration
	CommitInterval time.Duration
	SessionTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

type Config struct {
	Brokers  []string
	Topics   Topics
	Producer ProducerConfig
	Consumer ConsumerConfig

	EnableMiddleware bool
	MetricsInterval  time.Duration
}

var compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}

// Load reads the KAFKA_* and topic variables. Unparseable values are errors,
// not silent fallbacks to the default.
func Load() (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		Brokers: splitBrokers(env.str(EnvBrokers, DefaultBrokers)),
		Topics: Topics{
			Parsed:     env.str(EnvParsedTopic, DefaultParsedTopic),
			Normalized: env.str(EnvNormalizedTopic, DefaultNormalizedTopic),
			GroupID:    env.str(EnvNormalizerGroupID, DefaultNormalizerGroupID),
			DLQ:        env.str(EnvNormalizerDLQTopic, DefaultNormalizerDLQTopic),
		},
		Producer: ProducerConfig{
			MaxAttempts:  env.int(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: env.duration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequiredAcks: env.int(EnvProducerRequiredAcks, DefaultProducerRequiredAcks),
			Compression:  strings.ToLower(env.str(EnvProducerCompression, DefaultProducerCompression)),
		},
		Consumer: ConsumerConfig{
			StartOffset:    int64(env.int(EnvConsumerStartOffset, DefaultConsumerStartOffset)),
			MaxBytes:       env.int(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
			MaxWait:        env.duration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
			CommitInterval: env.duration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
			SessionTimeout: env.duration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
			MaxRetries:     env.int(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
			RetryBackoff:   env.duration(EnvConsumerRetryBackoff, DefaultConsumerRetryBackoff),
		},
		EnableMiddleware: env.bool(EnvEnableMiddleware, DefaultEnableMiddleware),
		MetricsInterval:  env.duration(EnvMetricsInterval, DefaultMetricsInterval),
	}

	if err := errors.Join(env.errs, cfg.Validate()); err != nil {
		return nil, fmt.Errorf("kafka configuration: %w", err)
	}
	return cfg, nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (cfg *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(len(cfg.Brokers) > 0, "at least one broker is required")

	t := cfg.Topics
	check(t.Parsed != "", "parsed topic cannot be empty")
	check(t.Normalized != "", "normalized topic cannot be empty")
	check(t.GroupID != "", "normalizer group id cannot be empty")
	check(t.Parsed == "" || t.Parsed != t.Normalized, "parsed and normalized topics must differ, both are %q", t.Parsed)
	check(t.DLQ == "" || (t.DLQ != t.Parsed && t.DLQ != t.Normalized), "dlq topic %q must not be a data topic", t.DLQ)

	p := cfg.Producer
	check(p.MaxAttempts > 0, "producer max attempts must be positive, got %d", p.MaxAttempts)
	check(p.BatchTimeout > 0, "producer batch timeout must be positive, got %s", p.BatchTimeout)
	check(p.RequiredAcks >= -1 && p.RequiredAcks <= 1, "producer required acks must be -1, 0 or 1, got %d", p.RequiredAcks)
	check(slices.Contains(compressions, p.Compression), "producer compression must be one of %v, got %q", compressions, p.Compression)

	c := cfg.Consumer
	check(c.StartOffset >= -2, "consumer start offset must be -1, -2 or >= 0, got %d", c.StartOffset)
	check(c.MaxBytes > 0, "consumer max bytes must be positive, got %d", c.MaxBytes)
	check(c.MaxWait > 0, "consumer max wait must be positive, got %s", c.MaxWait)
	check(c.CommitInterval > 0, "consumer commit interval must be positive, got %s", c.CommitInterval)
	check(c.SessionTimeout > 0, "consumer session timeout must be positive, got %s", c.SessionTimeout)
	check(c.MaxRetries >= 0, "consumer max retries cannot be negative, got %d", c.MaxRetries)
	check(c.RetryBackoff >= 0, "consumer retry backoff cannot be negative, got %s", c.RetryBackoff)

	check(cfg.MetricsInterval > 0, "metrics interval must be positive, got %s", cfg.MetricsInterval)

	return errors.Join(errs...)
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded",
		"brokers", cfg.Brokers,
		"parsed_topic", cfg.Topics.Parsed,
		"normalized_topic", cfg.Topics.Normalized,
		"group_id", cfg.Topics.GroupID,
		"dlq_topic", cfg.Topics.DLQ,
		"producer_compression", cfg.Producer.Compression,
		"producer_required_acks", cfg.Producer.RequiredAcks,
		"consumer_start_offset", cfg.Consumer.StartOffset,
		"consumer_max_retries", cfg.Consumer.MaxRetries,
		"consumer_retry_backoff", cfg.Consumer.RetryBackoff,
		"enable_middleware", cfg.EnableMiddleware,
		"metrics_interval", cfg.MetricsInterval,
	)
}

// envReader collects parse failures so Load can report them all at once.
type envReader struct {
	errs error
}

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key, value string, err error) {
	e.errs = errors.Join(e.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (e *envReader) str(key, fallback string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	v, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return n
}

func (e *envReader) bool(key string, fallback bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return b
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return d
}
