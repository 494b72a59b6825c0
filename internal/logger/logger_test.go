package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithFields_AccumulatesAcrossCalls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := log
	log = zap.New(core)
	t.Cleanup(func() { log = prev })

	ctx := WithFields(context.Background(), zap.String("run_id", "r1"))
	ctx = WithFields(ctx, zap.String("region", "UK"))

	InfoCtx(ctx, "Unit finished", zap.Int("new", 3))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "r1", fields["run_id"])
	assert.Equal(t, "UK", fields["region"])
	assert.Equal(t, int64(3), fields["new"])
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := log
	log = zap.New(core)
	t.Cleanup(func() { log = prev })

	parent := WithFields(context.Background(), zap.String("run_id", "r1"))
	_ = WithFields(parent, zap.String("region", "UK"))

	WarnCtx(parent, "Parent line")

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "region")
}

func TestErrorNilError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := log
	log = zap.New(core)
	t.Cleanup(func() { log = prev })

	Error(nil)

	assert.Equal(t, "error occurred", logs.All()[0].Message)
}

func TestInitialize_WithoutSentry(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	require.NoError(t, Initialize(Config{Debug: true}))
	assert.NotNil(t, Default())
}
