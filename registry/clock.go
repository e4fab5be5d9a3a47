package registry

import (
	"time"

	"go.jacobcolvin.com/perfmark/component"
)

// epoch anchors wall-clock readings so the monotonic clock is used for
// every delta.
var epoch = time.Now()

// clock is the shared accumulator behind every built-in component. The
// read function returns the current value of the underlying source in the
// clock's native units; Start/Stop accumulate deltas across laps.
//
// Start while running and Stop while idle are no-ops, so defensive
// instrumentation that enters twice by mistake cannot corrupt the total.
type clock struct {
	read    func() float64
	units   string
	display string
	start   float64
	total   float64
	laps    int
	running bool
}

func (c *clock) Start() {
	if c.running {
		return
	}

	c.running = true
	c.start = c.read()
}

func (c *clock) Stop() {
	if !c.running {
		return
	}

	c.total += c.read() - c.start
	c.laps++
	c.running = false
}

// Value returns the accumulated measurement. While running it includes the
// partial current lap.
func (c *clock) Value() float64 {
	if c.running {
		return c.total + c.read() - c.start
	}

	return c.total
}

func (c *clock) Laps() int {
	return c.laps
}

func (c *clock) Units() string {
	return c.units
}

func (c *clock) DisplayUnits() string {
	return c.display
}

func newWallClock() component.Component {
	return &clock{
		read:    func() float64 { return time.Since(epoch).Seconds() },
		units:   "sec",
		display: "sec",
	}
}

func newCPUClock() component.Component {
	return &clock{
		read: func() float64 {
			user, sys := cpuTimes()

			return user + sys
		},
		units:   "sec",
		display: "sec",
	}
}

func newUserClock() component.Component {
	return &clock{
		read: func() float64 {
			user, _ := cpuTimes()

			return user
		},
		units:   "sec",
		display: "sec",
	}
}

func newSysClock() component.Component {
	return &clock{
		read: func() float64 {
			_, sys := cpuTimes()

			return sys
		},
		units:   "sec",
		display: "sec",
	}
}

// newCUDAEvent is a host-side stand-in for a device event pair: it measures
// wall time between start and stop in milliseconds, the granularity CUDA
// events report. Keeping the name resolvable lets CUDA-annotated code run
// unmodified on hosts without a device.
func newCUDAEvent() component.Component {
	return &clock{
		read:    func() float64 { return float64(time.Since(epoch)) / float64(time.Millisecond) },
		units:   "msec",
		display: "msec",
	}
}
