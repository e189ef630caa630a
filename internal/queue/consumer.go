package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// StartMoviePublishedConsumer connects to RabbitMQ, declares the
// movie.published queue (durable) and starts consuming. Each event
// fans out into one notification row per active user. The function
// runs a reconnect loop with exponential backoff and never returns
// under normal operation; processing errors are logged and the
// offending message rejected without requeue to avoid tight loops.
func StartMoviePublishedConsumer(users *repository.UserRepo, notifications *repository.NotificationRepo) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("movie-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, users, notifications); err != nil {
			log.Printf("movie-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, users *repository.UserRepo, notifications *repository.NotificationRepo) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("movie-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(moviePublishedQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(moviePublishedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, users, notifications); err != nil {
			log.Printf("movie-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, users *repository.UserRepo, notifications *repository.NotificationRepo) error {
	var ev MoviePublishedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := users.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	title := "New movie added"
	message := fmt.Sprintf("%q is now available in the catalog.", ev.Title)
	for _, id := range ids {
		if err := notifications.Insert(ctx, id, title, message); err != nil {
			// Keep fanning out; a single failed row should not drop
			// the notification for everyone else.
			log.Printf("movie-consumer: notify user %d failed: %v", id, err)
		}
	}
	return nil
}
