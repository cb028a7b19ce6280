package port_platform

import "github.com/google/uuid"

// IDGenerator hands out transfer, quote and message ids.
type IDGenerator interface {
	NewUUID() uuid.UUID
}
