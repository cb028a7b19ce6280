package impl_scheme

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	"github.com/google/uuid"
)

// SynthesizeCondition derives a stand-in condition from the transfer id. It
// is only used outside production when the hub omits one.
func SynthesizeCondition(transferID uuid.UUID) string {
	sum := sha256.Sum256([]byte("condition:" + transferID.String()))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func synthesizeFulfilment(transferID uuid.UUID) string {
	sum := sha256.Sum256([]byte("fulfilment:" + transferID.String()))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// HashTransferMessage fingerprints the payload of a settlement instruction so
// a replay of the same transfer id can be told apart from a conflicting one.
// The quote id is left out: a retried run re-quotes under the same transfer id.
func HashTransferMessage(msg port_scheme.TransferMessage) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		msg.TransferID,
		msg.Amount.Amount.StringFixed(4),
		strings.ToUpper(string(msg.Amount.Currency)),
		strings.ToUpper(string(msg.TargetCurrency)),
		msg.Condition,
		msg.ILPPacket,
	)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
