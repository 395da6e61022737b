package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
	"github.com/Aleph-Alpha/clipsearch/v1/indexer"
	"github.com/Aleph-Alpha/clipsearch/v1/metrics"
	"github.com/Aleph-Alpha/clipsearch/v1/thumbnail"
)

//go:generate mockgen -source=setup.go -destination=mock_consumer.go -package=ingest

// Upserter is the indexing contract the consumer writes through,
// satisfied by *indexer.Service.
type Upserter interface {
	Upsert(ctx context.Context, clips []clip.Clip) (indexer.Summary, error)
}

// Thumbnailer optionally decorates a batch with thumbnails before
// indexing, satisfied by *thumbnail.Processor.
type Thumbnailer interface {
	Process(ctx context.Context, clips []clip.Clip) ([]clip.Clip, thumbnail.Summary, error)
}

// Logger is the logging contract this package depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Consumer is the AMQP worker feeding the indexer.
type Consumer struct {
	cfg    Config
	writer Upserter
	thumbs Thumbnailer
	log    Logger
	stats  metrics.Collector

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
	done              sync.WaitGroup
}

// ConsumerParams carries the consumer's dependencies for Fx injection.
type ConsumerParams struct {
	fx.In

	Config      Config
	Upserter    Upserter
	Thumbnailer Thumbnailer `optional:"true"`
	Logger      Logger
	Stats       metrics.Collector `optional:"true"`
}

// NewConsumer connects to RabbitMQ and declares the consumer topology:
// durable exchange and queue, bound by the configured routing key, with
// prefetch QoS applied.
func NewConsumer(p ConsumerParams) (*Consumer, error) {
	cfg := p.Config

	conn, err := amqp.DialConfig(amqpURL(cfg), amqp.Config{
		Heartbeat: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: rabbit connection failed: %w", err)
	}

	channel, err := declareTopology(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Consumer{
		cfg:            cfg,
		writer:         p.Upserter,
		thumbs:         p.Thumbnailer,
		log:            p.Logger,
		stats:          p.Stats,
		conn:           conn,
		channel:        channel,
		shutdownSignal: make(chan struct{}),
	}, nil
}

func amqpURL(cfg Config) string {
	scheme := "amqp"
	if cfg.UseSSL {
		scheme = "amqps"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d", scheme, cfg.User, cfg.Password, cfg.Host, cfg.Port)
}

func declareTopology(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("ingest: channel setup failed: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.ExchangeName,
		cfg.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("ingest: exchange declare failed: %w", err)
	}

	if _, err := channel.QueueDeclare(
		cfg.QueueName,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("ingest: queue declare failed: %w", err)
	}

	if err := channel.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("ingest: queue bind failed: %w", err)
	}

	if cfg.PrefetchCount > 0 {
		if err := channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return nil, fmt.Errorf("ingest: qos failed: %w", err)
		}
	}

	return channel, nil
}

// Start begins consuming deliveries in a background goroutine.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()

	deliveries, err := channel.Consume(
		c.cfg.QueueName,
		c.cfg.ConsumerTag,
		false, // AutoAck: we ack per batch outcome
		false, // Exclusive
		false, // NoLocal
		false, // NoWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("ingest: consume failed: %w", err)
	}

	c.done.Add(1)
	go c.run(ctx, deliveries)

	c.log.InfoWithContext(ctx, "ingest consumer started", nil, map[string]interface{}{
		"queue":    c.cfg.QueueName,
		"exchange": c.cfg.ExchangeName,
		"prefetch": c.cfg.PrefetchCount,
	})
	return nil
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.done.Done()

	for {
		select {
		case <-c.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				c.log.WarnWithContext(ctx, "delivery channel closed", nil)
				return
			}
			c.handle(ctx, d)
		}
	}
}

// GracefulShutdown stops the consume loop and closes the channel and
// connection. Safe to call more than once.
func (c *Consumer) GracefulShutdown() {
	c.closeShutdownOnce.Do(func() {
		close(c.shutdownSignal)
	})
	c.done.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		_ = c.channel.Cancel(c.cfg.ConsumerTag, false)
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
