// Package service holds the operations shared by the CLI and the web
// surface, plus the RabbitMQ publisher for movie activity events.
// Publishing errors are logged and returned so callers can ignore them
// without interrupting the main flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/s9096309/movie-shelf/internal/config"
	q "github.com/s9096309/movie-shelf/internal/queue"
)

// EventPublisher emits MovieEvents.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.MovieEvent) error
}

// NewEventPublisher returns an AMQP publisher when events are enabled and
// a no-op otherwise.
func NewEventPublisher(cfg config.EventsConfig) EventPublisher {
	if !cfg.Enabled {
		return NoopPublisher{}
	}
	return &AMQPPublisher{url: cfg.URL}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, q.MovieEvent) error { return nil }

// AMQPPublisher dials the broker per event. Activity volume is a handful
// of messages per user action, so no connection is kept open.
type AMQPPublisher struct {
	url string
}

// Publish sends ev to the movie.activity queue as a persistent message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.MovieEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.ActivityQueueName, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActivityQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
