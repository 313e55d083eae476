package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"storefront-server/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
)

// ConsumerConfig holds configuration for the Kafka event consumer.
type ConsumerConfig struct {
	Brokers       []string
	ConsumerGroup string
	Topic         string

	// NumWorkers is the fixed pool size. Events with the same key always
	// go to the same worker.
	NumWorkers int

	// QueueSize is the buffer per worker.
	QueueSize int

	// DrainTimeout bounds how long Stop waits for in-flight events.
	DrainTimeout time.Duration

	// RetryBackoff is the pause after a failed fetch.
	RetryBackoff time.Duration
}

func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: consumerGroup,
		Topic:         topic,
		NumWorkers:    3,
		QueueSize:     50,
		DrainTimeout:  15 * time.Second,
		RetryBackoff:  time.Second,
	}
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	d := DefaultConsumerConfig(c.Brokers, c.ConsumerGroup, c.Topic)
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = d.DrainTimeout
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	return c
}

// job pairs an event with its message for the offset commit.
type job struct {
	event EventMessage
	msg   kafkago.Message
}

type consumer struct {
	config    ConsumerConfig
	reader    MessageReader
	processor EventProcessor
	logger    *observability.Logger

	queues []chan job

	cancelFetch context.CancelFunc
	started     chan struct{}
	doneCh      chan struct{}
	stopping    atomic.Bool
	stopOnce    sync.Once
}

// NewConsumer reads the topic with a consumer group and commits each
// offset only after the processor succeeded.
func NewConsumer(config ConsumerConfig, processor EventProcessor, logger *observability.Logger) EventConsumer {
	config = config.withDefaults()
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.ConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6,
		StartOffset:    kafkago.FirstOffset,
		CommitInterval: 0,
	})
	return newConsumer(config, reader, processor, logger)
}

func newConsumer(config ConsumerConfig, reader MessageReader, processor EventProcessor, logger *observability.Logger) *consumer {
	config = config.withDefaults()
	c := &consumer{
		config:    config,
		reader:    reader,
		processor: processor,
		logger:    logger,
		queues:    make([]chan job, config.NumWorkers),
		started:   make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for i := range c.queues {
		c.queues[i] = make(chan job, config.QueueSize)
	}
	return c
}

func (c *consumer) logContext(ctx context.Context) context.Context {
	return observability.WithFields(ctx,
		observability.Field{Key: "processor", Value: c.processor.Name()},
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
	)
}

func (c *consumer) Start(ctx context.Context) error {
	defer close(c.doneCh)

	ctx, cancel := context.WithCancel(c.logContext(ctx))
	c.cancelFetch = cancel
	close(c.started)
	defer cancel()

	c.logger.Info(ctx, fmt.Sprintf("starting %s consumer with %d workers", c.processor.Name(), c.config.NumWorkers))

	var wg sync.WaitGroup
	for i, q := range c.queues {
		wg.Add(1)
		go c.worker(observability.WithFields(ctx, observability.Field{Key: "worker_id", Value: i}), q, &wg)
	}

	c.fetchLoop(ctx)

	for _, q := range c.queues {
		close(q)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		c.logger.Info(ctx, "all workers drained")
	case <-time.After(c.config.DrainTimeout):
		c.logger.Warn(ctx, "drain timeout, in-flight events will be redelivered")
	}

	if err := c.reader.Close(); err != nil {
		c.logger.Error(ctx, "failed to close kafka reader", err)
	}
	c.logger.Info(ctx, fmt.Sprintf("%s consumer stopped", c.processor.Name()))
	return nil
}

func (c *consumer) fetchLoop(ctx context.Context) {
	for !c.stopping.Load() {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return
			}
			c.logger.Error(ctx, "failed to fetch message", err)
			select {
			case <-time.After(c.config.RetryBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}

		var event EventMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error(ctx, "skipping undecodable event", err)
			c.commit(ctx, msg)
			continue
		}
		if event.Key == "" {
			event.Key = string(msg.Key)
		}

		select {
		case c.queues[c.shard(event.Key)] <- job{event: event, msg: msg}:
		case <-ctx.Done():
			return
		}
	}
}

// shard keeps every event of one key on one worker, in order.
func (c *consumer) shard(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(c.queues)))
}

func (c *consumer) worker(ctx context.Context, queue <-chan job, wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range queue {
		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event_id", Value: j.event.ID},
			observability.Field{Key: "event_type", Value: j.event.Type},
		)

		// Processing ignores cancellation so a stop never cuts an event short.
		if err := c.processor.Process(context.WithoutCancel(eventCtx), j.event); err != nil {
			c.logger.Error(eventCtx, "failed to process event", err)
			continue
		}
		c.commit(eventCtx, j.msg)
	}
}

func (c *consumer) commit(ctx context.Context, msg kafkago.Message) {
	if err := c.reader.CommitMessages(context.WithoutCancel(ctx), msg); err != nil {
		c.logger.Error(ctx, "failed to commit offset", err)
	}
}

func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		c.logger.Info(c.logContext(context.Background()), "stopping consumer")
		c.stopping.Store(true)

		select {
		case <-c.started:
			c.cancelFetch()
			<-c.doneCh
		default:
		}
	})
}
