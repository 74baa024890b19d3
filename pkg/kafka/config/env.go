package kafka_config

const (
	EnvBrokers = "KAFKA_BROKERS"

	EnvParsedTopic        = "PARSED_TOPIC"
	EnvNormalizedTopic    = "NORMALIZED_TOPIC"
	EnvNormalizerGroupID  = "NORMALIZER_GROUP_ID"
	EnvNormalizerDLQTopic = "NORMALIZER_DLQ_TOPIC"

	EnvProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvProducerRequiredAcks = "KAFKA_PRODUCER_REQUIRED_ACKS"
	EnvProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"

	EnvConsumerStartOffset    = "KAFKA_CONSUMER_START_OFFSET"
	EnvConsumerMaxBytes       = "KAFKA_CONSUMER_MAX_BYTES"
	EnvConsumerMaxWait        = "KAFKA_CONSUMER_MAX_WAIT"
	EnvConsumerCommitInterval = "KAFKA_CONSUMER_COMMIT_INTERVAL"
	EnvConsumerSessionTimeout = "KAFKA_CONSUMER_SESSION_TIMEOUT"
	EnvConsumerMaxRetries     = "KAFKA_CONSUMER_MAX_RETRIES"
	EnvConsumerRetryBackoff   = "KAFKA_CONSUMER_RETRY_BACKOFF"

	EnvEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"
	EnvMetricsInterval  = "KAFKA_METRICS_INTERVAL"
)
