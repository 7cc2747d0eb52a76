package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type memWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishJSON(t *testing.T) {
	w := &memWriter{}
	p := &Producer{writer: w, topic: "decisions"}

	if err := p.PublishJSON(context.Background(), "BTC/USDT", map[string]any{"result": true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "BTC/USDT" {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}
	var got map[string]any
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil || got["result"] != true {
		t.Fatalf("unexpected payload %s (%v)", w.msgs[0].Value, err)
	}
	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("close not propagated")
	}
}

func TestPublishJSONWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{writer: &memWriter{err: boom}, topic: "decisions"}
	if err := p.PublishJSON(context.Background(), "k", 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}
}

func TestNewProducerRequiresBrokersAndTopic(t *testing.T) {
	if _, err := NewProducer(WithTopic("t")); err == nil {
		t.Fatalf("expected brokers error")
	}
	if _, err := NewProducer(WithBrokers([]string{"localhost:9092"})); err == nil {
		t.Fatalf("expected topic error")
	}
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithTopic("trendgate.decisions"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Topic() != "trendgate.decisions" {
		t.Fatalf("unexpected topic %s", p.Topic())
	}
	_ = p.Close()
}

func TestParseCompression(t *testing.T) {
	if parseCompression("zstd") != kafka.Zstd || parseCompression("") != kafka.Gzip {
		t.Fatalf("unexpected compression mapping")
	}
}
