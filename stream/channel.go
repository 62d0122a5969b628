package stream

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Channel delivery errors. Both are treated identically by the publisher:
// the channel is pruned from the registry.
var (
	ErrChannelClosed = errors.New("stream: channel closed")
	ErrChannelFull   = errors.New("stream: channel buffer full")
)

// Channel is one open, writable binding between a subscriber and a single
// long-lived connection. It is created by the stream handler on open and
// owned by it; the publisher only ever sends into its buffer.
type Channel struct {
	id     string
	frames chan []byte
	done   chan struct{}
	once   sync.Once
}

// NewChannel creates a channel with the given frame buffer size.
func NewChannel(buffer int) *Channel {
	if buffer < 1 {
		buffer = 1
	}
	return &Channel{
		id:     uuid.New().String(),
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() string { return c.id }

// Frames returns the channel's outbound frame buffer.
func (c *Channel) Frames() <-chan []byte { return c.frames }

// Done is closed when the channel transitions to closed.
func (c *Channel) Done() <-chan struct{} { return c.done }

// Send enqueues an encoded frame for delivery. It never blocks: a closed
// channel returns ErrChannelClosed, a saturated buffer ErrChannelFull.
func (c *Channel) Send(frame []byte) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	select {
	case c.frames <- frame:
		return nil
	case <-c.done:
		return ErrChannelClosed
	default:
		return ErrChannelFull
	}
}

// Close marks the channel closed. Safe to call multiple times; the frames
// buffer is left intact so a racing reader drains without panicking.
func (c *Channel) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Closed reports whether the channel has been closed.
func (c *Channel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
