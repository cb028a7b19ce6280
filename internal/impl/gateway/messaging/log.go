package impl_messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPublisher writes events to the log instead of a broker. It is used
// when no broker is configured.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log.WithField("component", "log_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	fields := logrus.Fields{"topic": topic, "key": key, "payload": string(payload)}
	for k, v := range headers {
		fields["header_"+k] = v
	}
	p.log.WithFields(fields).Info("event published")
	return nil
}
