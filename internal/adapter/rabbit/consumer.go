package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/metrics"
	"github.com/Temutjin2k/fare-estimator/pkg/rabbit"
)

// JournalHandler receives decoded estimator events.
type JournalHandler interface {
	RecordEstimate(ctx context.Context, ev models.EstimateComputedEvent) error
	RecordBooking(ctx context.Context, ev models.BookingConfirmedEvent) error
}

// JournalConsumer reads every estimator event from the 'estimator_journal' queue.
type JournalConsumer struct {
	client  *rabbit.RabbitMQ
	service string
	l       logger.Logger
}

func NewJournalConsumer(client *rabbit.RabbitMQ, service string, l logger.Logger) *JournalConsumer {
	return &JournalConsumer{client: client, service: service, l: l}
}

// declareAndBindQueue объявляет очередь журнала и привязывает её к exchange.
func (c *JournalConsumer) declareAndBindQueue(ctx context.Context) (amqp.Queue, error) {
	const op = "JournalConsumer.declareAndBindQueue"

	if err := c.client.DeclareTopicExchange(EstimatorExchange); err != nil {
		return amqp.Queue{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	q, err := c.client.Channel.QueueDeclare(JournalQueue, true, false, false, false, nil)
	if err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: declare queue failed: %w", op, err))
	}

	for _, key := range journalBindings {
		if err := c.client.Channel.QueueBind(q.Name, key, EstimatorExchange, false, nil); err != nil {
			return q, wrap.Error(ctx, fmt.Errorf("%s: bind queue failed: %w", op, err))
		}
	}

	return q, nil
}

// Consume blocks until ctx is done, reconnecting when the broker goes away.
func (c *JournalConsumer) Consume(ctx context.Context, h JournalHandler) error {
	const op = "JournalConsumer.Consume"
	ctx = wrap.WithAction(ctx, "rabbitmq_consume_journal")

	for {
		if ctx.Err() != nil {
			c.l.Debug(ctx, "journal consumer stopped by context")
			return nil
		}

		if err := c.client.EnsureConnection(ctx); err != nil {
			c.l.Error(ctx, "ensure connection failed", err, "op", op)
			sleepCtx(ctx, 2*time.Second)
			continue
		}

		q, err := c.declareAndBindQueue(ctx)
		if err != nil {
			c.l.Error(ctx, "declare queue failed", err, "op", op)
			sleepCtx(ctx, 2*time.Second)
			continue
		}

		msgs, err := c.client.Channel.Consume(q.Name, "", false, false, false, false, nil)
		if err != nil {
			c.l.Error(ctx, "consume failed", err, "op", op)
			sleepCtx(ctx, 2*time.Second)
			continue
		}

		c.l.Info(ctx, "start consuming estimator events", "queue", q.Name)

	consumeLoop:
		for {
			select {
			case <-ctx.Done():
				c.l.Info(ctx, "journal consumer shutting down")
				return nil

			case msg, ok := <-msgs:
				if !ok {
					c.l.Warn(ctx, "message channel closed, reconnecting...")
					sleepCtx(ctx, 2*time.Second)
					break consumeLoop
				}
				c.handleMessage(ctx, h, msg)
			}
		}
	}
}

func (c *JournalConsumer) handleMessage(ctx context.Context, h JournalHandler, msg amqp.Delivery) {
	ctx = wrap.WithRequestID(ctx, msg.CorrelationId)

	err := c.dispatch(ctx, h, msg.RoutingKey, msg.Body)
	metrics.RecordRabbitMQConsume(c.service, JournalQueue, err)

	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			c.l.Error(ctx, "failed to ack message", ackErr)
		}
		return
	}

	c.l.Error(wrap.ErrorCtx(ctx, err), "failed to handle estimator event", err, "routing_key", msg.RoutingKey)

	// повторяем один раз, чтобы не зациклиться на постоянной ошибке
	if isRecoverableError(err) && !msg.Redelivered {
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Nack(false, false)
}

func (c *JournalConsumer) dispatch(ctx context.Context, h JournalHandler, key string, body []byte) error {
	switch {
	case strings.HasPrefix(key, string(types.EventEstimateComputed)):
		var ev models.EstimateComputedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: %v", types.ErrMalformedMessage, err)
		}
		return h.RecordEstimate(wrap.WithEstimateID(ctx, ev.Estimate.ID.String()), ev)

	case strings.HasPrefix(key, string(types.EventBookingConfirmed)):
		var ev models.BookingConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: %v", types.ErrMalformedMessage, err)
		}
		return h.RecordBooking(wrap.WithEstimateID(ctx, ev.Booking.EstimateID.String()), ev)

	default:
		return fmt.Errorf("%w: unknown routing key %q", types.ErrMalformedMessage, key)
	}
}
