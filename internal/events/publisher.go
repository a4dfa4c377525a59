package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"codgate/internal/config"
	"codgate/internal/metrics"
	"codgate/internal/model"

	"github.com/segmentio/kafka-go"
)

// Publisher emits an event for every created order. Consumers (spreadsheet
// sync, analytics) are outside this service; publishing is fire-and-forget
// and must never fail a customer's checkout.
type Publisher interface {
	OrderCreated(ctx context.Context, entry *model.OrderLogEntry)
	Close() error
}

// kafkaPublisher writes order-created events to a Kafka topic.
type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher from config. With no brokers configured
// it returns a no-op publisher, so single-binary deployments work without
// Kafka.
func NewPublisher(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 || (len(cfg.Brokers) == 1 && cfg.Brokers[0] == "") {
		log.Println("Kafka brokers not configured, order events disabled.")
		return nopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &kafkaPublisher{writer: writer}
}

// OrderCreated publishes one JSON message keyed by shop and order name.
// Failures are logged and counted, never propagated.
func (p *kafkaPublisher) OrderCreated(ctx context.Context, entry *model.OrderLogEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to encode order event %s: %v", entry.OrderName, err)
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.ShopID + "|" + entry.OrderName),
		Value: payload,
	})
	if err != nil {
		log.Printf("failed to publish order event %s: %v", entry.OrderName, err)
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return
	}
	metrics.EventsPublished.WithLabelValues("success").Inc()
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

func (nopPublisher) OrderCreated(context.Context, *model.OrderLogEntry) {}
func (nopPublisher) Close() error                                       { return nil }
