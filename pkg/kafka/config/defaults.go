package kafka_config

import "time"

const (
	DefaultBrokers = "localhost:9092"

	DefaultParsedTopic        = "addresses.parsed"
	DefaultNormalizedTopic    = "addresses.normalized"
	DefaultNormalizerGroupID  = "address-normalizer"
	DefaultNormalizerDLQTopic = "addresses.parsed.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequiredAcks = -1
	DefaultProducerCompression  = "snappy"

	// -2 is kafka.FirstOffset: a new group drains the parsed backlog.
	DefaultConsumerStartOffset    = -2
	DefaultConsumerMaxBytes       = 10 * 1024 * 1024
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = time.Second
	DefaultConsumerSessionTimeout = 10 * time.Second
	DefaultConsumerMaxRetries     = 3
	DefaultConsumerRetryBackoff   = 200 * time.Millisecond

	DefaultEnableMiddleware = true
	DefaultMetricsInterval  = time.Minute
)
