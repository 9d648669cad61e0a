package mq_client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/types"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.declared = append(c.declared, name+"/"+kind)
	return c.declareErr
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.keys = append(c.keys, exchange+":"+key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeWriter struct {
	messages []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testPayout() *models.Payout {
	return &models.Payout{
		UUID:         uuid.MustParse("7b1f2d1e-8f0e-4c55-9a55-6a4f0b0b7f10"),
		TenantID:     null.StringFrom("coop-tenant"),
		EntityType:   types.EntityInstructor,
		EntityID:     "instructor-9",
		Amount:       decimal.RequireFromString("43.00"),
		Status:       types.PayoutPending,
		ScheduledFor: time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
	}
}

func TestAMQPPublisher(t *testing.T) {
	channel := &fakeChannel{}
	p, err := newAMQPPublisher(channel, "bramble.events")
	require.NoError(t, err)

	events := &PayoutEvents{Publisher: p}
	require.NoError(t, events.PayoutCreated(context.Background(), testPayout()))

	assert.Equal(t, []string{"bramble.events/topic"}, channel.declared)
	assert.Equal(t, []string{"bramble.events:payout.created"}, channel.keys)
	require.Len(t, channel.published, 1)

	msg := channel.published[0]
	assert.Equal(t, "7b1f2d1e-8f0e-4c55-9a55-6a4f0b0b7f10", msg.MessageId)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var event PayoutEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, "instructor-9", event.EntityID)
	assert.Equal(t, "coop-tenant", event.TenantID.String)
	assert.True(t, event.Amount.Equal(decimal.NewFromInt(43)))
	assert.Equal(t, types.PayoutPending, event.Status)

	require.NoError(t, p.Close())
	assert.True(t, channel.closed)
}

func TestAMQPPublisherDeclareFailure(t *testing.T) {
	channel := &fakeChannel{declareErr: errors.New("access refused")}

	_, err := newAMQPPublisher(channel, "bramble.events")
	assert.Error(t, err)
	assert.True(t, channel.closed)
}

func TestKafkaPublisher(t *testing.T) {
	writer := &fakeWriter{}
	events := &PayoutEvents{Publisher: &KafkaPublisher{writer: writer}}

	require.NoError(t, events.PayoutCreated(context.Background(), testPayout()))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, EventPayoutCreated, writer.messages[0].Topic)
	assert.Equal(t, []byte("7b1f2d1e-8f0e-4c55-9a55-6a4f0b0b7f10"), writer.messages[0].Key)
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(BackendNone, "", "", nil)
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewPublisher(BackendKafka, "", "", nil)
	assert.Error(t, err)

	p, err = NewPublisher(BackendKafka, "", "", []string{"localhost:9092"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, p)

	_, err = NewPublisher("carrier-pigeon", "", "", nil)
	assert.Error(t, err)
}
