package timex

import "time"

// Clock hands out strictly increasing UTC times, so records created within
// the same clock reading still have a total order. Callers serialise access.
type Clock struct {
	// Now defaults to time.Now.
	Now  func() time.Time
	last time.Time
}

// Next returns Now, or one nanosecond past the previous result when Now has
// not advanced.
func (c *Clock) Next() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Nanosecond)
	}
	c.last = t
	return t
}
