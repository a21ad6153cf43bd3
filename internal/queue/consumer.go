package queue

// The activity consumer listens to the movie.activity queue and appends
// one line per event to <dir>/activity.log.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ActivityLogName is the file written inside the activity directory.
const ActivityLogName = "activity.log"

// StartActivityConsumer connects to RabbitMQ, declares the movie.activity
// queue (durable) and consumes it forever. Broker outages are retried with
// exponential backoff capped at 30s; a message that cannot be handled is
// rejected without requeue so the loop keeps going.
func StartActivityConsumer(url, dir string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, dir); err != nil {
			log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, dir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("activity-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(ActivityQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ActivityQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(dir, d.Body); err != nil {
			log.Printf("activity-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one MovieEvent and appends its line to the log.
func HandleMessage(dir string, body []byte) error {
	var ev MovieEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Kind == "" {
		return errors.New("event without kind")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, ActivityLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single human-friendly, newline-terminated line.
func FormatLine(ev MovieEvent) string {
	parts := []string{fmt.Sprintf("[%s] %s", ev.At, ev.Kind)}
	if ev.UserID != 0 {
		parts = append(parts, "user_id="+strconv.FormatInt(ev.UserID, 10))
	}
	if ev.MovieID != 0 {
		parts = append(parts, "movie_id="+strconv.FormatInt(ev.MovieID, 10))
	}
	if ev.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%q", ev.Title))
	}
	if ev.Year != 0 {
		parts = append(parts, "year="+strconv.Itoa(ev.Year))
	}
	if ev.Kind == KindMovieAdded || ev.Kind == KindMovieUpdated {
		parts = append(parts, "rating="+strconv.FormatFloat(ev.Rating, 'f', 1, 64))
	}
	if ev.IMDbID != "" {
		parts = append(parts, "imdb_id="+ev.IMDbID)
	}
	parts = append(parts, "source="+ev.Source)
	return strings.Join(parts, " | ") + "\n"
}
