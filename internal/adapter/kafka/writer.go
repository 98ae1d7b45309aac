// Package kafka publishes normalized records for downstream consumers. The
// publisher is feature-flagged and off by default; the CSV export remains
// the primary output.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/meteo-archive-etl/internal/config"
	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
)

// Writer produces one message per normalized record to the sink topic.
// It implements pipeline.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Write serializes and publishes the corpus in a single WriteMessages call.
// Messages are keyed by station so one station's records stay in order on
// one partition.
func (w *Writer) Write(ctx context.Context, corpus []domain.Record) error {
	if len(corpus) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(corpus))
	for i := range corpus {
		msg, err := serializeToMessage(corpus[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish corpus: %w", err)
	}
	w.logger.Info("published corpus", "records", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a normalized record into a Kafka message.
// Merged records always carry a timestamp; the merge drops the rest.
func serializeToMessage(rec domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(rec.Station),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station", Value: []byte(rec.Station)},
		},
	}
	if rec.Timestamp != nil {
		msg.Headers = append(msg.Headers, kafkago.Header{
			Key: "observed_at", Value: []byte(rec.Timestamp.Format(time.RFC3339)),
		})
	}
	return msg, nil
}
