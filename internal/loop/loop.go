// Package loop serialises work the way a single-threaded event loop does.
package loop

import "sync"

// Loop runs queued tasks one at a time on whichever goroutine drains it.
// Do waits for its task to run, Post only queues it, and After defers a
// callback until the drain is over so that it may call Do again.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	after   []func()
	running bool
}

// New returns an idle loop.
func New() *Loop {
	return &Loop{}
}

// Do runs fn and returns once it has run. When the loop is idle the caller
// drains it; when another goroutine is draining, fn is queued behind the
// pending work and Do blocks until it completes. Tasks must use Post, since
// Do from inside a task would wait on itself.
func (l *Loop) Do(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.running {
		done := make(chan struct{})
		l.queue = append(l.queue, func() {
			defer close(done)
			fn()
		})
		l.mu.Unlock()
		<-done
		return
	}
	l.queue = append(l.queue, fn)
	l.running = true
	l.mu.Unlock()
	l.drain()
}

// Post queues fn without waiting for a running drain. When the loop is idle
// the queue is drained before Post returns.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.mu.Unlock()
	l.drain()
}

// After runs fn on the draining goroutine once the queue is empty, outside
// the loop. Called while the loop is idle, fn runs immediately.
func (l *Loop) After(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		fn()
		return
	}
	l.after = append(l.after, fn)
	l.mu.Unlock()
}

// Idle reports whether no task is running or queued.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.running && len(l.queue) == 0
}

func (l *Loop) drain() {
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.running = false
			l.mu.Unlock()
			panic(r)
		}
	}()
	var after []func()
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.running = false
			after, l.after = l.after, nil
			l.mu.Unlock()
			break
		}
		next := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()
		next()
	}
	for _, fn := range after {
		fn()
	}
}
