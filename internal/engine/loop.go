package engine

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Loop serializes work onto a single goroutine, the interface thread.
// All window notifications, style applications and script execution
// happen here, which is what makes per-direction FIFO ordering hold
// without further locking.
type Loop struct {
	jobs    chan func()
	done    chan struct{}
	started atomic.Bool
	stop    sync.Once
	gid     atomic.Int64
}

const defaultLoopDepth = 256

// NewLoop builds a stopped loop.
func NewLoop() *Loop {
	return &Loop{
		jobs: make(chan func(), defaultLoopDepth),
		done: make(chan struct{}),
	}
}

// Start launches the loop goroutine. Safe to call once.
func (l *Loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go l.run()
}

func (l *Loop) run() {
	l.gid.Store(goroutineID())
	for {
		select {
		case fn := <-l.jobs:
			fn()
		case <-l.done:
			// Drain what was posted before the stop.
			for {
				select {
				case fn := <-l.jobs:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post schedules fn on the loop, fire-and-forget. Posting to a stopped
// loop drops the job.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case <-l.done:
	case l.jobs <- fn:
	}
}

// PostWait schedules fn and blocks until it ran. Called from the loop
// goroutine it runs fn inline.
func (l *Loop) PostWait(fn func()) {
	if l.RunningOnLoop() {
		fn()
		return
	}
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Stop shuts the loop down after draining queued jobs.
func (l *Loop) Stop() {
	l.stop.Do(func() { close(l.done) })
}

// RunningOnLoop reports whether the caller is the loop goroutine.
// Callers use it to run work inline instead of deadlocking in PostWait.
func (l *Loop) RunningOnLoop() bool {
	gid := l.gid.Load()
	return gid != 0 && gid == goroutineID()
}

// goroutineID parses the current goroutine's id out of its stack
// header. There is no supported API for this; the loop only uses it
// for the reentrance check.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header shape: "goroutine 123 [running]:"
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
