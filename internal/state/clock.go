package state

import (
	"github.com/google/uuid"
)

// Clock hands out the increasing sequence numbers stamped on history
// entries. Sequence numbers are never reused within a session, so a redone
// entry keeps the number it was committed with.
type Clock struct {
	counter uint64
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	c.counter++
	return c.counter
}

// Now returns the last value handed out.
func (c *Clock) Now() uint64 {
	return c.counter
}

// NewSessionID returns a random identifier for a drawing session.
func NewSessionID() string {
	return uuid.NewString()
}

func newEntryID() string {
	return uuid.NewString()
}
