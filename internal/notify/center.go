package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lucabelezal/cardlimit-service/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultDuration is used when a toast is shown without an explicit
// lifetime.
const DefaultDuration = 5 * time.Second

// Options tune where and for how long a toast is shown
type Options struct {
	Position models.ToastPosition
	Duration time.Duration
}

// Center holds at most one visible toast at a time. Showing a new toast
// replaces the current one; every toast hides itself when its duration
// elapses.
type Center struct {
	mu      sync.Mutex
	current *models.Toast
	timer   *time.Timer
	subs    map[int]chan models.ToastState
	nextSub int
	log     *logrus.Logger
}

// NewCenter initializes an empty toast center
func NewCenter(log *logrus.Logger) *Center {
	return &Center{
		subs: make(map[int]chan models.ToastState),
		log:  log,
	}
}

// Show displays a toast and schedules its auto-hide
func (c *Center) Show(message string, typ models.ToastType, opts Options) models.Toast {
	if opts.Position == "" {
		opts.Position = models.ToastBottom
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	toast := models.Toast{
		ID:         uuid.NewString(),
		Message:    message,
		Type:       typ,
		Position:   opts.Position,
		DurationMS: opts.Duration.Milliseconds(),
		ShownAt:    time.Now(),
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = &toast
	id := toast.ID
	c.timer = time.AfterFunc(opts.Duration, func() { c.Hide(id) })
	c.broadcastLocked()
	c.mu.Unlock()

	c.log.Debugf("Toast shown: %s (%s)", message, typ)
	return toast
}

// Hide dismisses the toast with the given id. Hiding is idempotent and
// a stale timer from a replaced toast never dismisses its successor.
func (c *Center) Hide(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || c.current.ID != id {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.broadcastLocked()
}

// State returns a snapshot of the current toast state
func (c *Center) State() models.ToastState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Subscribe streams state changes until ctx is cancelled. The channel
// is buffered; a slow consumer misses intermediate states rather than
// blocking the center.
func (c *Center) Subscribe(ctx context.Context) <-chan models.ToastState {
	ch := make(chan models.ToastState, 8)

	c.mu.Lock()
	key := c.nextSub
	c.nextSub++
	c.subs[key] = ch
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, key)
		c.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (c *Center) stateLocked() models.ToastState {
	if c.current == nil {
		return models.ToastState{Visible: false}
	}
	toast := *c.current
	return models.ToastState{Visible: true, Toast: &toast}
}

func (c *Center) broadcastLocked() {
	state := c.stateLocked()
	for _, ch := range c.subs {
		select {
		case ch <- state:
		default:
		}
	}
}
