package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"postaladdr/internal/normalizer"
	"postaladdr/pkg/config"
	"postaladdr/pkg/kafka"
	kafka_config "postaladdr/pkg/kafka/config"
	kafka_middleware "postaladdr/pkg/kafka/middleware"
	"syscall"
)

const ServiceName = "normalizer"

func main() {
	cfg := config.Load(ServiceName)
	log := cfg.Log

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(log)

	topics := kafkaCfg.Topics
	producer, err := kafka.NewProducer(kafkaCfg, topics.Normalized, "", log)
	if err != nil {
		log.Fatal("Failed to create producer", "topic", topics.Normalized, "error", err)
	}

	n := normalizer.NewNormalizer(producer, log)
	consumer, err := kafka.NewConsumer(kafkaCfg, topics.Parsed, topics.GroupID, topics.DLQ, n.Handle, log)
	if err != nil {
		log.Fatal("Failed to create consumer", "topic", topics.Parsed, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if kafkaCfg.EnableMiddleware {
		metrics := kafka_middleware.NewMetrics()
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
		producer.Use(metrics.ProducerMiddleware())
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))
		consumer.Use(metrics.ConsumerMiddleware())
		go metrics.Report(ctx, log, kafkaCfg.MetricsInterval)
	}

	log.Info("Normalizer started",
		"parsed_topic", topics.Parsed,
		"normalized_topic", topics.Normalized,
		"group_id", topics.GroupID,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, kafka.ErrConsumerClosed) {
		log.Error("Consumer stopped with error", "error", err)
	}

	log.Info("Shutting down normalizer...")
	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	if err := producer.Close(); err != nil {
		log.Error("Failed to close producer", "error", err)
	}
	log.Info("Normalizer stopped")
}
