package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation engine and
// provides a ready-to-serve /metrics handler. It satisfies the engine's
// MetricsRecorder interface.
type SimCollector struct {
	gatherer prometheus.Gatherer

	ShotsFired prometheus.Counter
	Hits       prometheus.Counter
	Ticks      prometheus.Counter

	ProjectileAltitude prometheus.Gauge
	ProjectileSpeed    prometheus.Gauge

	FlightTime     prometheus.Histogram
	ImpactDistance prometheus.Histogram
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil. Re-registration of an identical collector is tolerated so tests can
// construct collectors repeatedly.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	shots, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "howitzer_shots_total",
		Help: "Total number of shells fired.",
	}), "howitzer_shots_total")
	if err != nil {
		return nil, err
	}
	hits, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "howitzer_hits_total",
		Help: "Total number of shells that landed within the hit tolerance of the target.",
	}), "howitzer_hits_total")
	if err != nil {
		return nil, err
	}
	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "howitzer_ticks_total",
		Help: "Total number of integration ticks advanced while a shell was in flight.",
	}), "howitzer_ticks_total")
	if err != nil {
		return nil, err
	}

	altitude, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "howitzer_projectile_altitude_meters",
		Help: "Current altitude of the shell in flight, floored at the ground datum.",
	}), "howitzer_projectile_altitude_meters")
	if err != nil {
		return nil, err
	}
	speed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "howitzer_projectile_speed_mps",
		Help: "Current speed of the shell in flight.",
	}), "howitzer_projectile_speed_mps")
	if err != nil {
		return nil, err
	}

	flightTime, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "howitzer_flight_time_seconds",
		Help:    "Flight time of completed shots.",
		Buckets: []float64{5, 10, 20, 40, 60, 90, 120, 180},
	}), "howitzer_flight_time_seconds")
	if err != nil {
		return nil, err
	}
	impact, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "howitzer_impact_distance_meters",
		Help:    "Distance from impact point to the target for completed shots.",
		Buckets: []float64{25, 50, 100, 175, 250, 500, 1000, 2500, 5000, 10000},
	}), "howitzer_impact_distance_meters")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:           gatherer,
		ShotsFired:         shots,
		Hits:               hits,
		Ticks:              ticks,
		ProjectileAltitude: altitude,
		ProjectileSpeed:    speed,
		FlightTime:         flightTime,
		ImpactDistance:     impact,
	}, nil
}

// RecordShot counts a fired shell.
func (c *SimCollector) RecordShot() {
	if c == nil {
		return
	}
	c.ShotsFired.Inc()
}

// RecordHit counts a shell landing within the hit tolerance.
func (c *SimCollector) RecordHit() {
	if c == nil {
		return
	}
	c.Hits.Inc()
}

// RecordTick updates the in-flight gauges after one integration step.
func (c *SimCollector) RecordTick(altitude, speed float64) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.ProjectileAltitude.Set(altitude)
	c.ProjectileSpeed.Set(speed)
}

// RecordImpact observes the outcome of a completed flight.
func (c *SimCollector) RecordImpact(targetDistance, flightTime float64) {
	if c == nil {
		return
	}
	c.ImpactDistance.Observe(targetDistance)
	c.FlightTime.Observe(flightTime)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
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

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
