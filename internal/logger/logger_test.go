package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersAttachRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	ctx := WithRequestID(context.Background(), "req-42")
	Info(ctx, "catalog loaded", zap.Int("items", 8))
	Error(ctx, "store failed", errors.New("boom"))
	Warn(context.Background(), "no request")

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	_, has := entries[2].ContextMap()["request_id"]
	assert.False(t, has)
}

func TestRequestIDEmptyWhenMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
