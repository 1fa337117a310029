package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ViewerCollector bundles Prometheus metrics for the frame loop and the
// WebSocket presentation surface.
type ViewerCollector struct {
	gatherer prometheus.Gatherer

	FramesTotal   prometheus.Counter
	FrameDuration prometheus.Histogram
	FramesDropped prometheus.Counter

	ConnectedClients prometheus.Gauge
	SolutionRoutes   prometheus.Gauge
	SolutionStops    prometheus.Gauge
	AnimatedVehicles prometheus.Gauge
}

// NewViewerCollector registers viewer metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewViewerCollector(reg prometheus.Registerer) (*ViewerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_frames_total",
		Help: "Total number of animation frames produced by the frame loop.",
	})
	frames, err := registerCounter(reg, frames, "viewer_frames_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "viewer_frame_duration_seconds",
		Help:    "Wall-clock cost of one tick: animation advance plus present step.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})
	duration, err = registerHistogram(reg, duration, "viewer_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_frames_dropped_total",
		Help: "Frames dropped because a client's send queue was full.",
	})
	dropped, err = registerCounter(reg, dropped, "viewer_frames_dropped_total")
	if err != nil {
		return nil, err
	}

	clients, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_connected_clients",
		Help: "Current number of connected WebSocket viewers.",
	}), "viewer_connected_clients")
	if err != nil {
		return nil, err
	}
	routes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solution_routes",
		Help: "Number of routes in the loaded solution.",
	}), "solution_routes")
	if err != nil {
		return nil, err
	}
	stops, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solution_stops",
		Help: "Total number of stops across all routes of the loaded solution.",
	}), "solution_stops")
	if err != nil {
		return nil, err
	}
	vehicles, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solution_animated_vehicles",
		Help: "Number of vehicle states driven by the animation engine.",
	}), "solution_animated_vehicles")
	if err != nil {
		return nil, err
	}

	return &ViewerCollector{
		gatherer:         gatherer,
		FramesTotal:      frames,
		FrameDuration:    duration,
		FramesDropped:    dropped,
		ConnectedClients: clients,
		SolutionRoutes:   routes,
		SolutionStops:    stops,
		AnimatedVehicles: vehicles,
	}, nil
}

// ObserveFrame records one completed tick. It satisfies the frame
// loop's FrameObserver interface.
func (c *ViewerCollector) ObserveFrame(d time.Duration) {
	if c == nil {
		return
	}
	if c.FramesTotal != nil {
		c.FramesTotal.Inc()
	}
	if c.FrameDuration != nil {
		c.FrameDuration.Observe(d.Seconds())
	}
}

// SetSolutionCounts drives the solution gauges after a (re)load.
func (c *ViewerCollector) SetSolutionCounts(routes, stops, vehicles int) {
	if c == nil {
		return
	}
	if c.SolutionRoutes != nil {
		c.SolutionRoutes.Set(float64(routes))
	}
	if c.SolutionStops != nil {
		c.SolutionStops.Set(float64(stops))
	}
	if c.AnimatedVehicles != nil {
		c.AnimatedVehicles.Set(float64(vehicles))
	}
}

// ClientConnected / ClientDisconnected move the connected-clients gauge.
func (c *ViewerCollector) ClientConnected() {
	if c != nil && c.ConnectedClients != nil {
		c.ConnectedClients.Inc()
	}
}

func (c *ViewerCollector) ClientDisconnected() {
	if c != nil && c.ConnectedClients != nil {
		c.ConnectedClients.Dec()
	}
}

// FrameDropped counts a frame discarded for a slow client.
func (c *ViewerCollector) FrameDropped() {
	if c != nil && c.FramesDropped != nil {
		c.FramesDropped.Inc()
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ViewerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
