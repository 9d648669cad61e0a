package mq_client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/types"
)

const (
	BackendNone  = "none"
	BackendAMQP  = "amqp"
	BackendKafka = "kafka"

	EventPayoutCreated = "payout.created"
)

// Publisher delivers one event payload. key identifies the subject of the
// event (a payout uuid) and becomes the AMQP message id or the Kafka key.
type Publisher interface {
	Publish(ctx context.Context, event string, key string, payload []byte) error
	Close() error
}

type PayoutEvent struct {
	UUID         uuid.UUID          `json:"uuid"`
	TenantID     null.String        `json:"tenant_id"`
	EntityType   types.EntityType   `json:"entity_type"`
	EntityID     string             `json:"entity_id"`
	Amount       decimal.Decimal    `json:"amount"`
	Status       types.PayoutStatus `json:"status"`
	ScheduledFor time.Time          `json:"scheduled_for"`
}
