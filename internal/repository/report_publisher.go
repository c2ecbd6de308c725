package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"NFTCast/internal/domain/models"
	domrepo "NFTCast/internal/domain/repository"
	pkgkafka "NFTCast/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish writes the analysis keyed by its id; reports without one get a fresh uuid.
func (p *KafkaPublisher) Publish(ctx context.Context, a *models.Analysis) error {
	if a == nil {
		return errors.New("nil analysis")
	}
	key := a.ID
	if key == "" {
		key = uuid.NewString()
	}
	return p.producer.PublishBatch(ctx, p.topic, []pkgkafka.Message{{
		Key:   []byte(key),
		Value: a,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "contract", Value: []byte(a.NFT.ContractAddress)},
		},
	}})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
