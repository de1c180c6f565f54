package match

import (
	"sync"
	"time"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// CelebrationDuration is how long a match celebration stays visible.
const CelebrationDuration = 5 * time.Second

// Celebration tracks the transient effect shown after a successful match.
// Each Start returns a sequence number; Expire only clears the effect it
// was issued for, so a timer from an earlier match never ends a newer one.
type Celebration struct {
	mu     sync.Mutex
	now    func() time.Time
	seq    uint64
	active bool
	dog    domain.Dog
	until  time.Time
}

// NewCelebration creates an inactive celebration using now as clock.
// A nil now uses time.Now.
func NewCelebration(now func() time.Time) *Celebration {
	if now == nil {
		now = time.Now
	}
	return &Celebration{now: now}
}

// Start shows the celebration for dog and returns its sequence number.
func (c *Celebration) Start(dog domain.Dog) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.active = true
	c.dog = dog
	c.until = c.now().Add(CelebrationDuration)
	return c.seq
}

// Expire clears the celebration if seq is still the current one.
func (c *Celebration) Expire(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || !c.active {
		return false
	}
	c.active = false
	return true
}

// Dismiss clears the celebration immediately.
func (c *Celebration) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Active returns the celebrated dog while the effect is visible.
func (c *Celebration) Active() (domain.Dog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active && !c.now().Before(c.until) {
		c.active = false
	}
	return c.dog, c.active
}

// Remaining returns the time left before the effect clears on its own.
func (c *Celebration) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return 0
	}
	return max(c.until.Sub(c.now()), 0)
}
