package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/metrics"
	"github.com/Temutjin2k/fare-estimator/pkg/rabbit"
)

// EstimatorProducer publishes estimator events to the 'estimator_topic' exchange.
type EstimatorProducer struct {
	client   *rabbit.RabbitMQ
	exchange string
	service  string

	l logger.Logger
}

func NewEstimatorProducer(client *rabbit.RabbitMQ, service string, l logger.Logger) *EstimatorProducer {
	return &EstimatorProducer{
		client:   client,
		exchange: EstimatorExchange,
		service:  service,
		l:        l,
	}
}

// Setup declares the exchange. Called once at startup.
func (p *EstimatorProducer) Setup(ctx context.Context) error {
	if err := p.client.EnsureConnection(ctx); err != nil {
		return err
	}
	return p.client.DeclareTopicExchange(p.exchange)
}

// PublishEstimateComputed sends 'estimate.computed.{category}'.
func (p *EstimatorProducer) PublishEstimateComputed(ctx context.Context, estimate models.Estimate) error {
	msg := models.EstimateComputedEvent{
		Type:      types.EventEstimateComputed,
		Estimate:  estimate,
		RequestID: wrap.RequestID(ctx),
		Timestamp: time.Now().UTC(),
	}
	return p.publish(ctx, routingKey(msg.Type, estimate.Request.Category), estimate.ID.String(), msg)
}

// PublishBookingConfirmed sends 'booking.confirmed.{category}'.
func (p *EstimatorProducer) PublishBookingConfirmed(ctx context.Context, booking models.Booking) error {
	msg := models.BookingConfirmedEvent{
		Type:      types.EventBookingConfirmed,
		Booking:   booking,
		RequestID: wrap.RequestID(ctx),
		Timestamp: time.Now().UTC(),
	}
	return p.publish(ctx, routingKey(msg.Type, booking.Category), booking.EstimateID.String(), msg)
}

func (p *EstimatorProducer) publish(ctx context.Context, key, correlationID string, msg any) (err error) {
	const op = "EstimatorProducer.publish"
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_"+key)

	defer func() { metrics.RecordRabbitMQPublish(p.service, key, err) }()

	if err := p.client.EnsureConnection(ctx); err != nil {
		p.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	if err := retry(ctx, 3, 500*time.Millisecond, func() error {
		return p.client.Channel.PublishWithContext(
			ctx,
			p.exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: correlationID,
				DeliveryMode:  amqp091.Persistent,
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	}); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionPublishFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}

func routingKey(event types.EventType, category types.RideCategory) string {
	return fmt.Sprintf("%s.%s", event, category)
}
