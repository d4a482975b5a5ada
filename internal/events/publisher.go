// Package events publishes analysis status updates to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange status updates go to.
const DefaultExchange = "analysis_updates"

// Update is the message body of a status change.
type Update struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// RoutingKey is "analysis.<id>", so consumers can bind to one analysis or
// to "analysis.*".
func RoutingKey(analysisID uuid.UUID) string {
	return fmt.Sprintf("analysis.%s", analysisID)
}

type Publisher struct {
	conn     *amqp.Connection
	exchange string
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn, exchange: exchange}, nil
}

// PublishStatus sends one update. A channel is opened per message; updates
// are rare compared to the model call they describe.
func (p *Publisher) PublishStatus(_ context.Context, analysisID uuid.UUID, status, message string) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	update := Update{
		AnalysisID: analysisID,
		Status:     status,
		Message:    message,
		Timestamp:  time.Now().UTC(),
	}
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return ch.Publish(
		p.exchange,
		RoutingKey(analysisID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   update.Timestamp,
			Body:        body,
		},
	)
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
