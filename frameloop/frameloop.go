// Package frameloop drives the per-frame tick sequence: advance the
// vehicle animation engine, then present a frame snapshot. All mutable
// animation state is owned by the loop goroutine; control messages
// (play/pause, viewport resize) are delivered on a channel selected in
// the same goroutine, so they interleave between ticks but never run
// concurrently with one.
package frameloop

import (
	"time"

	"github.com/fleetglass/route-animator/core"
)

// VehiclePosition is one vehicle's per-tick wire state.
type VehiclePosition struct {
	Vehicle  int     `json:"vehicle"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Segment  int     `json:"segment"`
	Progress float64 `json:"progress"`
}

// Frame is the immutable snapshot handed to the present step after each
// tick. It holds value copies only, so presenting may hand it to other
// goroutines freely.
type Frame struct {
	Tick     uint64            `json:"tick"`
	Elapsed  float64           `json:"elapsed"`
	Paused   bool              `json:"paused"`
	Camera   core.CameraState  `json:"camera"`
	Vehicles []VehiclePosition `json:"vehicles"`
}

// PresentFunc receives the frame snapshot at the end of each tick.
type PresentFunc func(Frame)

// FrameObserver receives the wall-clock cost of each completed tick.
type FrameObserver interface {
	ObserveFrame(d time.Duration)
}

type controlKind int

const (
	controlToggle controlKind = iota
	controlResize
)

type control struct {
	kind   controlKind
	width  int
	height int
}

// Loop is the frame scheduler. It starts with animation active and
// ticks until Stop is called; pausing never stalls the loop, it only
// prevents state advancement for subsequent ticks.
type Loop struct {
	interval time.Duration
	engine   *core.Engine
	camera   *core.Camera
	present  PresentFunc
	observer FrameObserver

	active bool
	tick   uint64

	ctrl   chan control
	stopCh chan struct{}
	done   chan struct{}
}

// New constructs a loop ticking at the given interval. present may be
// nil, in which case frames are computed but not delivered anywhere.
func New(engine *core.Engine, camera *core.Camera, interval time.Duration, present PresentFunc) *Loop {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return &Loop{
		interval: interval,
		engine:   engine,
		camera:   camera,
		present:  present,
		active:   true,
		ctrl:     make(chan control, 16),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetObserver attaches a frame-timing observer. Must be called before
// Start.
func (l *Loop) SetObserver(obs FrameObserver) { l.observer = obs }

// Start runs the loop in its own goroutine.
func (l *Loop) Start() {
	go l.run()
}

// Stop halts the loop and returns once the final tick has completed.
func (l *Loop) Stop() {
	close(l.stopCh)
	<-l.done
}

// Done is closed when the loop goroutine exits.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Toggle flips the animation-active flag between ticks. It never blocks
// the caller: if the loop is busy and the control queue is full the
// toggle is dropped, matching the cooperative single-toggle surface.
func (l *Loop) Toggle() {
	select {
	case l.ctrl <- control{kind: controlToggle}:
	default:
	}
}

// Resize updates the camera aspect ratio and output surface dimensions
// between ticks. The framing (ViewFit) is untouched.
func (l *Loop) Resize(width, height int) {
	select {
	case l.ctrl <- control{kind: controlResize, width: width, height: height}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-l.stopCh:
			return
		case c := <-l.ctrl:
			l.apply(c)
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			l.step(elapsed)
		}
	}
}

func (l *Loop) apply(c control) {
	switch c.kind {
	case controlToggle:
		l.active = !l.active
	case controlResize:
		l.camera.SetAspect(c.width, c.height)
	}
}

// step is one full tick: every vehicle updates in route index order,
// then the present step reads the resulting positions. No position for
// tick k is presented before its own update for tick k has applied.
func (l *Loop) step(elapsed time.Duration) {
	start := time.Now()

	l.engine.Advance(elapsed, l.active)
	l.tick++

	frame := l.snapshot(elapsed)
	if l.present != nil {
		l.present(frame)
	}
	if l.observer != nil {
		l.observer.ObserveFrame(time.Since(start))
	}
}

func (l *Loop) snapshot(elapsed time.Duration) Frame {
	vehicles := l.engine.Vehicles()
	frame := Frame{
		Tick:     l.tick,
		Elapsed:  elapsed.Seconds(),
		Paused:   !l.active,
		Camera:   l.camera.State(),
		Vehicles: make([]VehiclePosition, 0, len(vehicles)),
	}
	for _, v := range vehicles {
		frame.Vehicles = append(frame.Vehicles, VehiclePosition{
			Vehicle:  v.Vehicle,
			X:        v.Position.X,
			Y:        v.Position.Y,
			Segment:  v.Segment,
			Progress: v.Progress,
		})
	}
	return frame
}
