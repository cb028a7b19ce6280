package impl_messaging

import (
	"context"
	"fmt"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

const flushTimeoutMs = 5000

// KafkaPublisher produces one message per call and waits for its delivery
// report, so a nil error means the broker acknowledged the write.
type KafkaPublisher struct {
	producer *kafka.Producer
	log      logrus.FieldLogger
}

func NewKafkaPublisher(broker string, log logrus.FieldLogger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  broker,
		"acks":               "all",
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	p := &KafkaPublisher{producer: producer, log: log.WithField("component", "kafka_publisher")}
	go p.watchErrors()

	p.log.WithField("broker", broker).Info("Kafka producer initialized")
	return p, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hdrs := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		hdrs = append(hdrs, kafka.Header{Key: k, Value: []byte(headers[k])})
	}

	delivery := make(chan kafka.Event, 1)
	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          payload,
		Headers:        hdrs,
	}, delivery)
	if err != nil {
		return fmt.Errorf("kafka: produce to %s: %w", topic, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case ev := <-delivery:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("kafka: unexpected delivery event %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("kafka: delivery to %s failed: %w", topic, m.TopicPartition.Error)
		}
		return nil
	}
}

// watchErrors drains client-level events such as broker connection errors.
func (p *KafkaPublisher) watchErrors() {
	for e := range p.producer.Events() {
		if kerr, ok := e.(kafka.Error); ok {
			p.log.WithError(kerr).Error("Kafka client error")
		}
	}
}

func (p *KafkaPublisher) Close() {
	if remaining := p.producer.Flush(flushTimeoutMs); remaining > 0 {
		p.log.WithField("remaining", remaining).Warn("Kafka producer closed with undelivered messages")
	}
	p.producer.Close()
}
