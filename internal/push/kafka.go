package push

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

const consumerGroup = "kaspi-console"

type Handler interface {
	Dispatch(message []byte) error
}

// KafkaConsumer reads push envelopes from a topic. Records are handled one at
// a time in partition order, so per-order arrival order is kept.
type KafkaConsumer struct {
	client  *kgo.Client
	handler Handler
	logger  *zap.SugaredLogger
}

func NewKafkaConsumer(brokers []string, topic string, handler Handler, logger *zap.SugaredLogger) (*KafkaConsumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(consumerGroup),
		kgo.ConsumeTopics(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &KafkaConsumer{client: client, handler: handler, logger: logger}, nil
}

// Run polls until ctx is done.
func (kc *KafkaConsumer) Run(ctx context.Context) error {
	kc.logger.Info("push consumer started")
	for {
		fetches := kc.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			if !errors.Is(err, context.Canceled) {
				kc.logger.Errorf("fetch %s/%d: %v", topic, partition, err)
			}
		})

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			if err := kc.handler.Dispatch(record.Value); err != nil {
				kc.logger.Warnf("push record %s/%d@%d: %v", record.Topic, record.Partition, record.Offset, err)
			}
		}
	}
}

func (kc *KafkaConsumer) Close() {
	kc.client.Close()
}
