// Package normalizer turns raw parser output read from Kafka into typed
// addresses and republishes them.
package normalizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"postaladdr/pkg/address"
	"postaladdr/pkg/kafka"
	"postaladdr/pkg/logger"
	"postaladdr/pkg/model"

	"github.com/google/uuid"
)

const (
	EventTypeNormalized = "address.normalized"
	SchemaVersion       = "1"
	SourceName          = "address-normalizer"
)

var (
	ErrEmptyPayload   = errors.New("empty payload")
	ErrInvalidPayload = errors.New("payload is not a component mapping")
)

type Normalizer struct {
	publisher kafka.Publisher
	log       *logger.Logger
}

func NewNormalizer(publisher kafka.Publisher, log *logger.Logger) *Normalizer {
	return &Normalizer{
		publisher: publisher,
		log:       log,
	}
}

// DecodeComponents accepts either a flat label to text object or an envelope
// of the form {"components": {...}}. A "components" key holding anything but
// an object is an ordinary unknown label and is dropped later like any other.
func DecodeComponents(value []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(value)) == 0 {
		return nil, ErrEmptyPayload
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw == nil {
		return nil, ErrInvalidPayload
	}

	body := value
	if inner, ok := raw["components"]; ok && isJSONObject(inner) {
		body = inner
	}

	var components map[string]string
	if err := json.Unmarshal(body, &components); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if components == nil {
		return nil, ErrInvalidPayload
	}
	return components, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Handle is a kafka.MessageHandler. Undecodable payloads are permanent
// failures and go to the DLQ; publish failures are transient and retried.
func (n *Normalizer) Handle(ctx context.Context, msg kafka.Message) error {
	components, err := DecodeComponents(msg.Value)
	if err != nil {
		return kafka.NewPermanentError("failed to decode parsed address", err).
			WithDetail("offset", msg.Offset).
			WithDetail("partition", msg.Partition)
	}

	normalized := model.NewNormalizedAddress(address.FromParsed(components))

	key := msg.Key
	if key == "" {
		key = msg.GetEventID()
	}
	if key == "" {
		key = uuid.NewString()
	}

	out, err := kafka.NewMessage().
		WithKey(key).
		WithValue(normalized).
		WithEventID("").
		WithEventType(EventTypeNormalized).
		WithCorrelationID(msg.GetCorrelationID()).
		WithCausationID(msg.GetEventID()).
		WithSchemaVersion(SchemaVersion).
		WithSource(SourceName).
		Build()
	if err != nil {
		return kafka.NewPermanentError("failed to encode normalized address", err)
	}

	if err := n.publisher.Publish(ctx, out); err != nil {
		return kafka.NewTransientError("failed to publish normalized address", err)
	}

	n.log.Debug("Address normalized",
		"key", key,
		"event_id", out.GetEventID(),
		"causation_id", msg.GetEventID(),
		"components", len(components),
		"empty", normalized.Address.IsEmpty(),
	)
	return nil
}
