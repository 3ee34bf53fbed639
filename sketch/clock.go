package sketch

// Clock reports seconds elapsed since Start. Readings never go backwards,
// even if the underlying time source does.
type Clock struct {
	now     func() float64
	start   float64
	last    float64
	started bool
}

func NewClock(now func() float64) *Clock {
	return &Clock{now: now}
}

// Start resets the clock to zero.
func (c *Clock) Start() {
	c.start = c.now()
	c.last = 0
	c.started = true
}

// Elapsed returns seconds since Start, or 0 before Start.
func (c *Clock) Elapsed() float64 {
	if !c.started {
		return 0
	}
	t := c.now() - c.start
	if t < c.last {
		t = c.last
	}
	c.last = t
	return t
}
