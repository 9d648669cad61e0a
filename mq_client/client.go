package mq_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bramblecoop/bramble/models"
)

// NewPublisher returns the publisher for backend. The "none" backend
// returns a nil Publisher.
func NewPublisher(backend, amqpURL, exchange string, brokers []string) (Publisher, error) {
	switch backend {
	case BackendNone, "":
		return nil, nil
	case BackendAMQP:
		p, err := NewAMQPPublisher(amqpURL, exchange)
		if err != nil {
			return nil, err
		}
		return p, nil
	case BackendKafka:
		if len(brokers) == 0 {
			return nil, fmt.Errorf("kafka backend requires at least one broker")
		}
		return NewKafkaPublisher(brokers), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", backend)
	}
}

// PayoutEvents announces payouts to the payout executor.
type PayoutEvents struct {
	Publisher Publisher
}

func (e *PayoutEvents) PayoutCreated(ctx context.Context, payout *models.Payout) error {
	payload, err := json.Marshal(PayoutEvent{
		UUID:         payout.UUID,
		TenantID:     payout.TenantID,
		EntityType:   payout.EntityType,
		EntityID:     payout.EntityID,
		Amount:       payout.Amount,
		Status:       payout.Status,
		ScheduledFor: payout.ScheduledFor,
	})
	if err != nil {
		return err
	}

	return e.Publisher.Publish(ctx, EventPayoutCreated, payout.UUID.String(), payload)
}
