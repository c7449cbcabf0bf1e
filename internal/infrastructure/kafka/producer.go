package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event_type"

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// WriteRawMessage отправляет уже сериализованное событие с ключом по id агрегата.
func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	const op = "Producer.WriteRawMessage"

	if err := p.writer.WriteMessages(ctx, toMessage(req)); err != nil {
		return e.Wrap(op, fmt.Errorf("event %s for %s: %w", req.EventType, req.Key, err))
	}
	return nil
}

// EnsureTopic создаёт топик каталога, если брокер о нём ещё не знает.
func (p *Producer) EnsureTopic(ctx context.Context) error {
	const op = "Producer.EnsureTopic"

	var dialer kafka.Dialer
	conn, err := dialer.DialContext(ctx, p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(op, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return e.Wrap(op, err)
		}
	}

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		p.logger.Debugf("%s: topic %s already has %d partitions", op, p.cfg.Topic, len(partitions))
		return nil
	}

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             p.cfg.Topic,
		NumPartitions:     p.cfg.Partitions,
		ReplicationFactor: p.cfg.ReplicationFactor,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return e.Wrap(op, fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
	}

	p.logger.Infof("%s: topic %s ready", op, p.cfg.Topic)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func toMessage(req *usecase.WriteRawMessageReq) kafka.Message {
	return kafka.Message{
		Key:   []byte(req.Key),
		Value: req.Payload,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(req.EventType)},
		},
	}
}
