package impl_platform_test

import (
	"testing"
	"time"

	impl_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/platform"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSystemClock_IsUTC(t *testing.T) {
	now := impl_platform.SystemClock{}.Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestUUIDGenerator_Fresh(t *testing.T) {
	g := impl_platform.UUIDGenerator{}
	a, b := g.NewUUID(), g.NewUUID()
	assert.NotEqual(t, uuid.Nil, a)
	assert.NotEqual(t, a, b)
}

func TestNewLogger(t *testing.T) {
	l := impl_platform.NewLogger("debug", true)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = impl_platform.NewLogger("nonsense", false)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
