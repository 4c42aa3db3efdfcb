package session

import (
	"fmt"
	"sync"
	"time"
)

// Countdown is the test timer: it starts at a fixed number of seconds,
// decrements once per interval, and fires callbacks on the way down. It
// is a cancellable resource; Stop is safe to call more than once and
// guarantees no further callbacks.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	interval  time.Duration
	warnAt    int
	warned    bool

	onTick   func(remaining int)
	onWarn   func()
	onExpire func()

	stop     chan struct{}
	stopOnce sync.Once
}

// warning threshold: five minutes left
const defaultWarnAt = 300

func NewCountdown(seconds int, interval time.Duration) *Countdown {
	return &Countdown{
		remaining: seconds,
		interval:  interval,
		warnAt:    defaultWarnAt,
		stop:      make(chan struct{}),
	}
}

func (c *Countdown) OnTick(f func(remaining int)) { c.onTick = f }
func (c *Countdown) OnWarn(f func())              { c.onWarn = f }
func (c *Countdown) OnExpire(f func())            { c.onExpire = f }

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Start launches the tick loop. Callbacks run on the loop goroutine.
func (c *Countdown) Start() {
	go c.loop()
}

func (c *Countdown) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining--
			remaining := c.remaining
			warn := !c.warned && remaining <= c.warnAt && remaining > 0
			if warn {
				c.warned = true
			}
			c.mu.Unlock()

			if c.onTick != nil {
				c.onTick(remaining)
			}
			if warn && c.onWarn != nil {
				c.onWarn()
			}
			if remaining <= 0 {
				c.Stop()
				if c.onExpire != nil {
					c.onExpire()
				}
				return
			}
		}
	}
}

func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// FormatRemaining renders seconds as M:SS for the timer display.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
