package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != DefaultBrokers {
		t.Errorf("Brokers = %v, want [%s]", cfg.Brokers, DefaultBrokers)
	}
	if cfg.Topics.Parsed != DefaultParsedTopic || cfg.Topics.Normalized != DefaultNormalizedTopic {
		t.Errorf("Topics = %+v", cfg.Topics)
	}
	if cfg.Topics.DLQ != DefaultNormalizerDLQTopic {
		t.Errorf("DLQ = %s, want %s", cfg.Topics.DLQ, DefaultNormalizerDLQTopic)
	}
	if cfg.Consumer.StartOffset != DefaultConsumerStartOffset {
		t.Errorf("StartOffset = %d, want %d", cfg.Consumer.StartOffset, DefaultConsumerStartOffset)
	}
	if cfg.MetricsInterval != DefaultMetricsInterval {
		t.Errorf("MetricsInterval = %s, want %s", cfg.MetricsInterval, DefaultMetricsInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvParsedTopic, "in")
	t.Setenv(EnvNormalizedTopic, "out")
	t.Setenv(EnvNormalizerDLQTopic, "in.dead")
	t.Setenv(EnvProducerCompression, "ZSTD")
	t.Setenv(EnvConsumerRetryBackoff, "1s")
	t.Setenv(EnvEnableMiddleware, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if strings.Join(cfg.Brokers, ",") != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.Topics.Parsed != "in" || cfg.Topics.Normalized != "out" || cfg.Topics.DLQ != "in.dead" {
		t.Errorf("Topics = %+v", cfg.Topics)
	}
	if cfg.Producer.Compression != "zstd" {
		t.Errorf("Compression = %s, want zstd", cfg.Producer.Compression)
	}
	if cfg.Consumer.RetryBackoff != time.Second {
		t.Errorf("RetryBackoff = %s, want 1s", cfg.Consumer.RetryBackoff)
	}
	if cfg.EnableMiddleware {
		t.Error("EnableMiddleware should be false")
	}
}

func TestLoad_ReportsUnparsableValues(t *testing.T) {
	t.Setenv(EnvConsumerMaxRetries, "three")
	t.Setenv(EnvMetricsInterval, "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail on unparsable values")
	}
	for _, key := range []string{EnvConsumerMaxRetries, EnvMetricsInterval} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should name %s", err.Error(), key)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{name: "no dlq", mutate: func(cfg *Config) { cfg.Topics.DLQ = "" }},
		{name: "no brokers", mutate: func(cfg *Config) { cfg.Brokers = nil }, contains: "broker"},
		{name: "same data topics", mutate: func(cfg *Config) { cfg.Topics.Normalized = cfg.Topics.Parsed }, contains: "must differ"},
		{name: "dlq is data topic", mutate: func(cfg *Config) { cfg.Topics.DLQ = cfg.Topics.Parsed }, contains: "dlq"},
		{name: "empty group", mutate: func(cfg *Config) { cfg.Topics.GroupID = "" }, contains: "group id"},
		{name: "bad acks", mutate: func(cfg *Config) { cfg.Producer.RequiredAcks = 2 }, contains: "required acks"},
		{name: "bad compression", mutate: func(cfg *Config) { cfg.Producer.Compression = "brotli" }, contains: "compression"},
		{name: "bad offset", mutate: func(cfg *Config) { cfg.Consumer.StartOffset = -3 }, contains: "start offset"},
		{name: "negative retries", mutate: func(cfg *Config) { cfg.Consumer.MaxRetries = -1 }, contains: "max retries"},
		{name: "zero metrics interval", mutate: func(cfg *Config) { cfg.MetricsInterval = 0 }, contains: "metrics interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if (err != nil) != (tt.contains != "") {
				t.Fatalf("Validate() error = %v, want error containing %q", err, tt.contains)
			}
			if err != nil && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Validate() error = %q, want it to mention %q", err.Error(), tt.contains)
			}
		})
	}
}
