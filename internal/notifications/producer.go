package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cinebook/internal/shared/config"

	"github.com/IBM/sarama"
)

// Publisher publishes booking lifecycle events. Delivery is at-least-once;
// callers treat publish failures as non-fatal and log them.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "booking-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// kafkaPublisher publishes booking events to Kafka
type kafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewPublisher creates a publisher from application config. When the event
// bus is disabled or no brokers are configured it returns a no-op publisher,
// so the booking flow never depends on Kafka being up.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) == 0 {
		log.Printf("event publishing disabled, using noop publisher")
		return &NoopPublisher{}, nil
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.Topic

	return NewKafkaPublisher(producerConfig)
}

// NewKafkaPublisher creates a new Kafka event publisher
func NewKafkaPublisher(config *KafkaProducerConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps events for the same key on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka event publisher created successfully")
	return newKafkaPublisherWithProducer(producer, config), nil
}

// newKafkaPublisherWithProducer wires an existing producer; used by tests.
func newKafkaPublisherWithProducer(producer sarama.SyncProducer, config *KafkaProducerConfig) *kafkaPublisher {
	return &kafkaPublisher{
		producer: producer,
		config:   config,
	}
}

// Publish wraps data in the event envelope and sends it to the topic.
// The event type is the partition key, so consumers see each type in order.
func (kp *kafkaPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	envelope := NewEnvelope(eventType, data)

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kp.config.Topic,
		Key:   sarama.StringEncoder(eventType),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("producer"), Value: []byte("cinebook-core")},
			{Key: []byte("created_at"), Value: []byte(envelope.Timestamp)},
		},
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	log.Printf("Event published - Topic: %s, Partition: %d, Offset: %d, Type: %s",
		kp.config.Topic, partition, offset, eventType)

	return nil
}

// Close closes the Kafka producer
func (kp *kafkaPublisher) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("Kafka event publisher closed")
	}
	return nil
}

// NoopPublisher drops events. Used when the event bus is not configured.
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
