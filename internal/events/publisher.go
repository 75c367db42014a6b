package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brunowerneck/payflow/internal/infrastructure/kafka"
)

const (
	TransactionEventsTopic = "transaction_events"
	UserEventsTopic        = "user_events"
)

// Publisher emits the fire-and-forget notifications each service sends after
// a mutation. One publish per mutation; a failed publish surfaces as an error.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, transactionID string) error
	PublishUserUpdated(ctx context.Context, userID string) error
}

type transactionCreatedEvent struct {
	Event         string    `json:"event"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

type userUpdatedEvent struct {
	Event     string    `json:"event"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type KafkaPublisher struct {
	producer kafka.KafkaProducer
}

func NewKafkaPublisher(producer kafka.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) PublishTransactionCreated(ctx context.Context, transactionID string) error {
	payload, err := json.Marshal(transactionCreatedEvent{
		Event:         "transaction.created",
		TransactionID: transactionID,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transaction.created event: %w", err)
	}
	return p.producer.Send(ctx, transactionID, payload)
}

func (p *KafkaPublisher) PublishUserUpdated(ctx context.Context, userID string) error {
	payload, err := json.Marshal(userUpdatedEvent{
		Event:     "user.updated",
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user.updated event: %w", err)
	}
	return p.producer.Send(ctx, userID, payload)
}
