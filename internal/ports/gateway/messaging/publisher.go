package messaging

import (
	"context"
)

// Publisher delivers an encoded outcome event. The key is the transfer id so
// every event for one transfer lands on the same partition.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}
