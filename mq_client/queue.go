package mq_client

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a durable topic exchange, using the
// event name as routing key.
type AMQPPublisher struct {
	connection *amqp.Connection
	channel    amqpChannel
	exchange   string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newAMQPPublisher(channel, exchange)
	if err != nil {
		connection.Close()
		return nil, err
	}
	p.connection = connection

	return p, nil
}

func newAMQPPublisher(channel amqpChannel, exchange string) (*AMQPPublisher, error) {
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{channel: channel, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event string, key string, payload []byte) error {
	return p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event,
		false,
		false,
		amqp.Publishing{
			Headers:      amqp.Table{},
			ContentType:  "application/json",
			MessageId:    key,
			Timestamp:    time.Now(),
			Body:         payload,
			DeliveryMode: amqp.Persistent, // 1=non-persistent, 2=persistent
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.channel.Close()

	if p.connection != nil {
		return p.connection.Close()
	}

	return nil
}
