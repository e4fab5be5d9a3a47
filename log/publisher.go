package log

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] that fans out written bytes to subscribers.
//
// Each [Publisher.Write] copies the input once and delivers it to every
// active [Subscription] over a buffered channel with ring-buffer
// semantics: a full subscriber drops its oldest entry so Write never
// blocks. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subs    []*Subscription
	bufSize int
	mu      sync.Mutex
	closed  bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// NewPublisher creates a [Publisher] with the given options.
// The default buffer size is 64.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write copies b and sends the copy to all active subscribers, dropping
// each full subscriber's oldest entry to make room. Subscriptions closed
// by their reader are compacted out. Write always returns len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	entry := make([]byte, len(b))
	copy(entry, b)

	alive := p.subs[:0]

	for _, sub := range p.subs {
		if sub.done.Load() {
			close(sub.ch)

			continue
		}

		sub.deliver(entry)
		alive = append(alive, sub)
	}

	// Clear trailing references so dropped subscriptions can be collected.
	for i := len(alive); i < len(p.subs); i++ {
		p.subs[i] = nil
	}

	p.subs = alive

	return len(b), nil
}

// Subscribe creates and registers a new [Subscription]. If the Publisher
// is already closed the returned subscription's channel is immediately
// closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		ch: make(chan []byte, p.bufSize),
	}

	if p.closed {
		close(sub.ch)

		return sub
	}

	p.subs = append(p.subs, sub)

	return sub
}

// Close marks the Publisher as closed, closes all subscription channels,
// and releases the subscriber list. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	for _, sub := range p.subs {
		close(sub.ch)
	}

	p.subs = nil

	return nil
}

// Subscription receives log entries from a [Publisher].
type Subscription struct {
	ch   chan []byte
	done atomic.Bool
}

// C returns the read-only channel that delivers log entries.
// Callers must not modify the returned byte slices.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close marks the subscription as closed. The Publisher closes the
// underlying channel on its next Write or Close call. Idempotent.
func (s *Subscription) Close() {
	s.done.Store(true)
}

// deliver enqueues entry, dropping the oldest buffered entry when full.
func (s *Subscription) deliver(entry []byte) {
	select {
	case s.ch <- entry:
	default:
		<-s.ch

		s.ch <- entry
	}
}
