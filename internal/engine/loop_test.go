package engine

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopPreservesOrder(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.PostWait(func() {})

	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoopPostWaitBlocksUntilRun(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var ran atomic.Bool
	l.PostWait(func() { ran.Store(true) })
	assert.True(t, ran.Load())
}

func TestRunningOnLoop(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	assert.False(t, l.RunningOnLoop())

	var onLoop bool
	l.PostWait(func() { onLoop = l.RunningOnLoop() })
	assert.True(t, onLoop)

	// PostWait from the loop goroutine runs inline instead of deadlocking.
	var nested bool
	l.PostWait(func() {
		l.PostWait(func() { nested = true })
	})
	assert.True(t, nested)
}

func TestLoopStopDropsLaterPosts(t *testing.T) {
	l := NewLoop()
	l.Start()
	l.Stop()

	// Must not block or panic.
	l.Post(func() { t.Fatal("posted after stop must not run") })
	l.PostWait(func() {})
}

func TestLoopStartIsIdempotent(t *testing.T) {
	l := NewLoop()
	l.Start()
	l.Start()
	defer l.Stop()
	l.PostWait(func() {})
}
