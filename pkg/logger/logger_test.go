package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoLevel int8 = 0

func TestGet_ReturnsSameInstance(t *testing.T) {
	l1 := Get(infoLevel)
	require.NotNil(t, l1)
	assert.Same(t, l1, Get(infoLevel))
	assert.Same(t, l1, GetWithSink(infoLevel, os.Stdout), "later sinks are ignored")
}

func TestGet_NoopWhenGlobalMissing(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(infoLevel))
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestWithLogger(t *testing.T) {
	l := Get(infoLevel)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Equal(t, ctx, WithLogger(ctx, l), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(ctx, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	l := Get(infoLevel)
	assert.Same(t, l, FromContext(context.Background()))
}

func TestSync_NoGlobal(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()
	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}))
	assert.True(t, isIgnorableSyncError(fmt.Errorf("wrap: %w", syscall.ENOTTY)))
	assert.True(t, isIgnorableSyncError(errors.New("sync: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValues(t *testing.T) {
	l := Get(infoLevel)
	nl := WithValues(l, KeyPath, "employees.json")
	require.NotNil(t, nl)
	assert.NotSame(t, l, nl)

	var nilLogger *logr.Logger
	assert.Panics(t, func() { _ = WithValues(nilLogger, "k", "v") })
}
