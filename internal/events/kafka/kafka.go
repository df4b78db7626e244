package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"activityBooker/internal/config"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/metrics"
	"activityBooker/internal/models"

	"github.com/IBM/sarama"
)

const EventBookingCreated = "booking.created"

type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Booking    *models.Booking `json:"booking"`
}

// Publisher sends booking events to a single topic, keyed by activity id so that
// events of one activity stay ordered within a partition. Delivery results are
// consumed in the background; BookingCreated only enqueues.
type Publisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      *slog.Logger
	done     sync.WaitGroup
}

func New(cfg config.Kafka, log *slog.Logger) (*Publisher, error) {
	const op = "events.kafka.New"

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%s: kafka brokers list is empty", op)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%s: kafka topic is empty", op)
	}

	version, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig(version, cfg.ClientID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithProducer(producer, cfg.Topic, log), nil
}

func NewWithProducer(producer sarama.AsyncProducer, topic string, log *slog.Logger) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		log:      log,
	}

	p.done.Add(1)
	go p.drain()

	return p
}

// BookingCreated enqueues the event. It blocks only while the producer's input
// buffer is full, and never past ctx.
func (p *Publisher) BookingCreated(ctx context.Context, booking *models.Booking) error {
	const op = "events.kafka.BookingCreated"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if booking == nil {
		return fmt.Errorf("%s: %w", op, errors.New("booking is nil"))
	}

	value, err := json.Marshal(Event{
		Type:       EventBookingCreated,
		OccurredAt: time.Now().UTC(),
		Booking:    booking,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(booking.ActivityID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("Event-Type"), Value: []byte(EventBookingCreated)},
		},
		Metadata: booking.ID,
	}

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// Close flushes buffered events and waits until every delivery result is handled.
func (p *Publisher) Close() error {
	p.log.Info("closing kafka producer")

	err := p.producer.Close()
	if err != nil {
		p.log.Error("failed to close kafka producer", sl.Err(err))
	}

	p.done.Wait()

	return err
}

func (p *Publisher) drain() {
	defer p.done.Done()

	successes := p.producer.Successes()
	errs := p.producer.Errors()

	for successes != nil || errs != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			p.log.Debug("booking event published",
				slog.Any("booking_id", msg.Metadata),
				slog.Int("partition", int(msg.Partition)),
				slog.Int64("offset", msg.Offset),
			)
		case perr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			metrics.BookingEventsFailed.Inc()
			var bookingID any
			if perr.Msg != nil {
				bookingID = perr.Msg.Metadata
			}
			p.log.Error("failed to publish booking event",
				slog.Any("booking_id", bookingID),
				sl.Err(perr.Err),
			)
		}
	}
}

func saramaConfig(version sarama.KafkaVersion, clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = version
	cfg.ClientID = clientID
	cfg.Net.DialTimeout = 3 * time.Second
	cfg.Metadata.Retry.Max = 1
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Timeout = 2 * time.Second
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Compression = sarama.CompressionSnappy

	return cfg
}
