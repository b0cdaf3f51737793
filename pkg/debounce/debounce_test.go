package debounce

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RunsOnlyLastTrigger(t *testing.T) {
	d := New(30 * time.Millisecond)
	got := make(chan string, 3)

	d.Trigger(func() { got <- "a" })
	d.Trigger(func() { got <- "ab" })
	d.Trigger(func() { got <- "abc" })

	select {
	case v := <-got:
		assert.Equal(t, "abc", v)
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}

	select {
	case v := <-got:
		t.Fatalf("unexpected extra run %q", v)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_ZeroDelayIsSynchronous(t *testing.T) {
	d := New(0)
	ran := false
	d.Trigger(func() { ran = true })
	assert.True(t, ran)
}

func TestDelay(t *testing.T) {
	start := time.Now()
	err := Delay(context.Background(), 20*time.Millisecond, func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	boom := errors.New("boom")
	assert.ErrorIs(t, Delay(context.Background(), 0, func(context.Context) error { return boom }), boom)
}

func TestDelay_CancelSkipsCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	called := false
	err := Delay(ctx, time.Hour, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
