package normalizer

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"postaladdr/pkg/kafka"
	"postaladdr/pkg/logger"
)

type mockPublisher struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.published = append(m.published, msg)
	return nil
}

func TestDecodeComponents(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    map[string]string
		wantErr error
	}{
		{
			name:  "flat mapping",
			value: `{"road":"Main St","city":"Austin"}`,
			want:  map[string]string{"road": "Main St", "city": "Austin"},
		},
		{
			name:  "envelope",
			value: `{"components":{"state":"tx"}}`,
			want:  map[string]string{"state": "tx"},
		},
		{
			name:  "empty object",
			value: `{}`,
			want:  map[string]string{},
		},
		{name: "blank", value: "  ", wantErr: ErrEmptyPayload},
		{name: "array", value: `["road"]`, wantErr: ErrInvalidPayload},
		{name: "null", value: `null`, wantErr: ErrInvalidPayload},
		{name: "non-string value", value: `{"house_number":12}`, wantErr: ErrInvalidPayload},
		{
			name:  "string components label is flat",
			value: `{"road":"Main St","components":"extra"}`,
			want:  map[string]string{"road": "Main St", "components": "extra"},
		},
		{name: "array components label", value: `{"components":["x"]}`, wantErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeComponents([]byte(tt.value))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandle_PublishesNormalizedAddress(t *testing.T) {
	pub := &mockPublisher{}
	n := NewNormalizer(pub, logger.Discard())

	in := kafka.Message{
		Key:   "order-17",
		Value: []byte(`{"house_number":"5","road":"Rue X","state":"qc","country":"Canada"}`),
		Headers: map[string]string{
			kafka.HeaderEventID:       "evt-in",
			kafka.HeaderCorrelationID: "corr-9",
		},
	}

	if err := n.Handle(context.Background(), in); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}

	out := pub.published[0]
	if out.Key != "order-17" {
		t.Errorf("key = %q", out.Key)
	}
	if out.GetCorrelationID() != "corr-9" {
		t.Errorf("correlation id = %q", out.GetCorrelationID())
	}
	if out.Headers[kafka.HeaderCausationID] != "evt-in" {
		t.Errorf("causation id = %q", out.Headers[kafka.HeaderCausationID])
	}
	if out.GetEventID() == "" || out.GetEventID() == "evt-in" {
		t.Errorf("expected a fresh event id, got %q", out.GetEventID())
	}
	if out.GetEventType() != EventTypeNormalized {
		t.Errorf("event type = %q", out.GetEventType())
	}

	var body struct {
		Address struct {
			State   map[string]string `json:"state"`
			Country map[string]string `json:"country"`
		} `json:"address"`
		SingleLine string `json:"single_line"`
	}
	if err := json.Unmarshal(out.Value, &body); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if body.SingleLine != "5 Rue X QC Canada" {
		t.Errorf("single_line = %q", body.SingleLine)
	}
	if body.Address.State["kind"] != "canadian_province" || body.Address.Country["kind"] != "name" {
		t.Errorf("kinds = %v / %v", body.Address.State, body.Address.Country)
	}
}

func TestHandle_KeyFallback(t *testing.T) {
	pub := &mockPublisher{}
	n := NewNormalizer(pub, logger.Discard())

	err := n.Handle(context.Background(), kafka.Message{
		Value:   []byte(`{"city":"Oslo"}`),
		Headers: map[string]string{kafka.HeaderEventID: "evt-2"},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if pub.published[0].Key != "evt-2" {
		t.Errorf("key = %q, want evt-2", pub.published[0].Key)
	}
}

func TestHandle_ErrorClassification(t *testing.T) {
	t.Run("bad payload is permanent", func(t *testing.T) {
		n := NewNormalizer(&mockPublisher{}, logger.Discard())
		err := n.Handle(context.Background(), kafka.Message{Key: "k", Value: []byte(`not json`)})
		if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
			t.Errorf("error %v classified as %v", err, kafka.ClassifyError(err))
		}
	})

	t.Run("publish failure is transient", func(t *testing.T) {
		pub := &mockPublisher{publishFunc: func(ctx context.Context, msg kafka.Message) error {
			return errors.New("leader not available")
		}}
		n := NewNormalizer(pub, logger.Discard())
		err := n.Handle(context.Background(), kafka.Message{Key: "k", Value: []byte(`{"city":"Oslo"}`)})
		if kafka.ClassifyError(err) != kafka.ErrorTypeTransient {
			t.Errorf("error %v classified as %v", err, kafka.ClassifyError(err))
		}
	})
}

func TestHandle_StringComponentsLabelIsDropped(t *testing.T) {
	pub := &mockPublisher{}
	n := NewNormalizer(pub, logger.Discard())

	err := n.Handle(context.Background(), kafka.Message{
		Key:   "k",
		Value: []byte(`{"city":"Oslo","components":"stray"}`),
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}

	var body struct {
		SingleLine string `json:"single_line"`
	}
	if err := json.Unmarshal(pub.published[0].Value, &body); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if body.SingleLine != "Oslo" {
		t.Errorf("single_line = %q, want Oslo", body.SingleLine)
	}
}
