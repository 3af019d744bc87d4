package monitoring

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names one timed pass of a frame.
type Stage int

const (
	StageCast Stage = iota
	StageSky
	StageFlats
	StageWalls
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageCast:
		return "cast"
	case StageSky:
		return "sky"
	case StageFlats:
		return "flats"
	case StageWalls:
		return "walls"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// PerformanceMonitor tracks frame and per-stage timings. All recording
// methods are safe for concurrent use.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	stageTime  [stageCount]atomic.Uint64

	mutex        sync.RWMutex
	avgFrameTime float64 // nanoseconds, exponential moving average
	startTime    time.Time

	lowFPS float64

	memMutex  sync.Mutex
	memReadAt time.Time
	memMB     uint64
	readMem   func() uint64
}

// memRefreshInterval bounds how often ReadMemStats, which stops the world,
// runs for GetCurrentMetrics.
const memRefreshInterval = time.Second

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
		lowFPS:    30,
		readMem:   allocMB,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	pm := ft.monitor
	pm.frameTime.Store(uint64(frameTime.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	if count == 1 {
		pm.avgFrameTime = float64(frameTime.Nanoseconds())
	} else {
		pm.avgFrameTime = 0.9*pm.avgFrameTime + 0.1*float64(frameTime.Nanoseconds())
	}
	pm.mutex.Unlock()
}

// StageTimer measures one stage of a frame
type StageTimer struct {
	monitor   *PerformanceMonitor
	stage     Stage
	startTime time.Time
}

// StartStage begins timing a frame stage
func (pm *PerformanceMonitor) StartStage(stage Stage) *StageTimer {
	return &StageTimer{
		monitor:   pm,
		stage:     stage,
		startTime: time.Now(),
	}
}

// End records the stage duration
func (st *StageTimer) End() {
	st.monitor.stageTime[st.stage].Store(uint64(time.Since(st.startTime).Nanoseconds()))
}

// Metrics is a point-in-time copy of the monitor's counters
type Metrics struct {
	Frames          uint64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	FramesPerSecond float64
	Stages          [stageCount]time.Duration
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	start := pm.startTime
	pm.mutex.RUnlock()

	m := Metrics{
		Frames:        pm.frameCount.Load(),
		FrameTime:     time.Duration(pm.frameTime.Load()),
		AvgFrameTime:  time.Duration(avg),
		MemoryUsageMB: pm.memoryUsageMB(time.Now()),
		Uptime:        time.Since(start),
	}
	if avg > 0 {
		m.FramesPerSecond = float64(time.Second) / avg
	}
	for i := range m.Stages {
		m.Stages[i] = time.Duration(pm.stageTime[i].Load())
	}
	return m
}

// memoryUsageMB returns the heap size, read at most once per memRefreshInterval.
func (pm *PerformanceMonitor) memoryUsageMB(now time.Time) uint64 {
	pm.memMutex.Lock()
	defer pm.memMutex.Unlock()
	if pm.memReadAt.IsZero() || now.Sub(pm.memReadAt) >= memRefreshInterval {
		pm.memMB = pm.readMem()
		pm.memReadAt = now
	}
	return pm.memMB
}

func allocMB() uint64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return memStats.Alloc / 1024 / 1024
}

// Stage returns the last recorded duration of one stage
func (m Metrics) Stage(s Stage) time.Duration {
	if s < 0 || s >= stageCount {
		return 0
	}
	return m.Stages[s]
}

func (m Metrics) String() string {
	return fmt.Sprintf("frames=%d fps=%.1f frame=%s cast=%s sky=%s flats=%s walls=%s mem=%dMB",
		m.Frames, m.FramesPerSecond, m.AvgFrameTime.Round(time.Microsecond),
		m.Stages[StageCast].Round(time.Microsecond), m.Stages[StageSky].Round(time.Microsecond),
		m.Stages[StageFlats].Round(time.Microsecond), m.Stages[StageWalls].Round(time.Microsecond),
		m.MemoryUsageMB)
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a low frame rate based on the moving average
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	pm.mutex.RLock()
	avg, threshold := pm.avgFrameTime, pm.lowFPS
	pm.mutex.RUnlock()

	if avg <= 0 {
		return nil
	}
	fps := float64(time.Second) / avg
	if fps >= threshold {
		return nil
	}
	return []PerformanceAlert{{
		Type:      "low_fps",
		Message:   fmt.Sprintf("Frame rate is below %.0f FPS", threshold),
		Value:     fps,
		Threshold: threshold,
		Timestamp: time.Now(),
	}}
}

// SetLowFPSThreshold changes the frame rate under which an alert is raised
func (pm *PerformanceMonitor) SetLowFPSThreshold(fps float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.lowFPS = fps
}
