package notify

import (
	"sync"
	"time"
)

// Kind classifies a banner.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Phase is the animation state of a mounted banner.
type Phase string

const (
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseLeaving  Phase = "leaving"
)

const (
	// DefaultAutoDismiss is how long a banner stays up without user action.
	DefaultAutoDismiss = 5 * time.Second
	// DefaultEnterDelay is the pause between mounting and sliding the banner into view.
	DefaultEnterDelay = 100 * time.Millisecond
	// DefaultExitDuration is the length of the slide-out animation.
	DefaultExitDuration = 300 * time.Millisecond
)

// Banner is a single dismissible notification.
type Banner struct {
	ID      uint64
	Message string
	Kind    Kind
}

// Surface is the host that renders banners.
type Surface interface {
	Mount(banner Banner)
	Transition(id uint64, phase Phase)
	Unmount(id uint64)
}

// Option customises a Center.
type Option func(*Center)

// WithAutoDismiss overrides the auto-dismiss delay.
func WithAutoDismiss(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.autoDismiss = d
		}
	}
}

// WithAnimation overrides the enter delay and exit duration.
func WithAnimation(enter, exit time.Duration) Option {
	return func(c *Center) {
		if enter >= 0 {
			c.enterDelay = enter
		}
		if exit >= 0 {
			c.exitDuration = exit
		}
	}
}

type activeBanner struct {
	banner  Banner
	phase   Phase
	enter   *time.Timer
	dismiss *time.Timer
	exit    *time.Timer
}

func (a *activeBanner) stopTimers() {
	for _, timer := range []*time.Timer{a.enter, a.dismiss, a.exit} {
		if timer != nil {
			timer.Stop()
		}
	}
}

// Center shows at most one banner at a time on its surface.
type Center struct {
	surface      Surface
	autoDismiss  time.Duration
	enterDelay   time.Duration
	exitDuration time.Duration

	mu      sync.Mutex
	seq     uint64
	current *activeBanner
}

// NewCenter builds a notification center rendering onto surface.
// A nil surface is a programming error.
func NewCenter(surface Surface, opts ...Option) *Center {
	if surface == nil {
		panic("notify: nil surface")
	}

	c := &Center{
		surface:      surface,
		autoDismiss:  DefaultAutoDismiss,
		enterDelay:   DefaultEnterDelay,
		exitDuration: DefaultExitDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show replaces whatever banner is displayed with a new one.
func (c *Center) Show(message string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.stopTimers()
		c.surface.Unmount(c.current.banner.ID)
		c.current = nil
	}

	c.seq++
	id := c.seq
	active := &activeBanner{
		banner: Banner{ID: id, Message: message, Kind: kind},
		phase:  PhaseEntering,
	}
	c.current = active
	c.surface.Mount(active.banner)

	active.enter = time.AfterFunc(c.enterDelay, func() { c.reveal(id) })
	active.dismiss = time.AfterFunc(c.autoDismiss, func() { c.Dismiss(id) })
}

// Dismiss starts the exit animation of banner id. Stale ids are ignored.
func (c *Center) Dismiss(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := c.current
	if active == nil || active.banner.ID != id || active.phase == PhaseLeaving {
		return
	}

	if active.enter != nil {
		active.enter.Stop()
	}
	if active.dismiss != nil {
		active.dismiss.Stop()
	}
	active.phase = PhaseLeaving
	c.surface.Transition(id, PhaseLeaving)
	active.exit = time.AfterFunc(c.exitDuration, func() { c.remove(id) })
}

// Current returns the banner on screen, if any.
func (c *Center) Current() (Banner, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Banner{}, false
	}
	return c.current.banner, true
}

func (c *Center) reveal(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.banner.ID != id || c.current.phase != PhaseEntering {
		return
	}
	c.current.phase = PhaseVisible
	c.surface.Transition(id, PhaseVisible)
}

func (c *Center) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.banner.ID != id {
		return
	}
	c.current = nil
	c.surface.Unmount(id)
}
