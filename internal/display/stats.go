package display

import (
	"log"
	"time"

	"raycaster/internal/threading/monitoring"
)

// statsLogger writes the monitor's metrics to the log at a fixed interval.
type statsLogger struct {
	interval time.Duration
	last     time.Time
	logf     func(format string, args ...any)
}

func newStatsLogger(interval time.Duration) *statsLogger {
	return &statsLogger{interval: interval, logf: log.Printf}
}

// maybeLog logs once per interval; a zero interval disables it. It reports
// whether a line was written.
func (s *statsLogger) maybeLog(now time.Time, pm *monitoring.PerformanceMonitor) bool {
	if s.interval <= 0 || pm == nil {
		return false
	}
	if s.last.IsZero() {
		s.last = now
		return false
	}
	if now.Sub(s.last) < s.interval {
		return false
	}
	s.last = now

	s.logf("[Stats] %s", pm.GetCurrentMetrics())
	for _, alert := range pm.CheckPerformanceAlerts() {
		s.logf("[Stats] %s: %s (%.1f)", alert.Type, alert.Message, alert.Value)
	}
	return true
}
