package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/food-rater/config"
	"github.com/alimikegami/food-rater/internal/dto"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

type Producer struct {
	writer *kafka.Writer
	cb     *gobreaker.CircuitBreaker[any]
}

func CreateKafkaProducer(config *config.Config, cb *gobreaker.CircuitBreaker[any]) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
			Topic:                  config.KafkaConfig.BrokerTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
		},
		cb: cb,
	}
}

// Publish writes msg keyed by key. Calls fail fast with gobreaker.ErrOpenState
// while the broker is considered down.
func (p *Producer) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	_, err = p.cb.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: payload,
		})
	})

	return err
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            config.KafkaConfig.BrokerTopic,
		GroupID:          config.KafkaConfig.GroupID,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}
