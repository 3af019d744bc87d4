package render

import (
	"fmt"

	"raycaster/internal/pixel"
	"raycaster/internal/threading/core"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"
)

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int
	// Workers above 1 spreads the wall and flat passes over a worker pool.
	Workers int
	// Step defaults to DefaultStep when zero.
	Step Step
	// Camera overrides the default camera at the map start.
	Camera *Camera
	// Monitor receives frame and stage timings. One is created when nil.
	Monitor *monitoring.PerformanceMonitor
}

// Renderer owns the camera, the per-column rays and two pixel buffers. Each
// Frame paints the back buffer and then publishes it as the front buffer.
type Renderer struct {
	world   *world.Map
	width   int
	height  int
	step    Step
	camera  Camera
	shading *ShadingTable
	rays    []Ray

	back  *pixel.Buffer
	front *pixel.Buffer

	pool    *core.WorkerPool
	monitor *monitoring.PerformanceMonitor
}

// NewRenderer validates the map and allocates the frame state.
func NewRenderer(m *world.Map, opts Options) (*Renderer, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil map", world.ErrMalformedMap)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid render size %dx%d", opts.Width, opts.Height)
	}

	r := &Renderer{
		world:   m,
		width:   opts.Width,
		height:  opts.Height,
		step:    opts.Step,
		shading: NewShadingTable(),
		rays:    make([]Ray, opts.Width),
		back:    pixel.NewBuffer(opts.Width, opts.Height),
		front:   pixel.NewBuffer(opts.Width, opts.Height),
		monitor: opts.Monitor,
	}
	if r.step == (Step{}) {
		r.step = DefaultStep
	}
	if opts.Camera != nil {
		r.camera = *opts.Camera
	} else {
		r.camera = NewCamera(m.GetStartingPosition())
	}
	if r.monitor == nil {
		r.monitor = monitoring.NewPerformanceMonitor()
	}
	if opts.Workers > 1 {
		r.pool = core.NewWorkerPool(opts.Workers)
		r.pool.Start()
	}
	return r, nil
}

// Close stops the worker pool, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Stop()
	}
}

// Update integrates one frame of input into the camera.
func (r *Renderer) Update(in Input) {
	r.camera.Apply(in, r.step, r.world)
}

// CastWalls recomputes the ray for every column from the current camera.
func (r *Renderer) CastWalls() error {
	timer := r.monitor.StartStage(monitoring.StageCast)
	defer timer.End()
	return CastWalls(r.camera, r.world, r.rays, r.height)
}

// Paint draws sky, floors and ceilings, then walls into the back buffer
// from the current rays.
func (r *Renderer) Paint() {
	heading := r.camera.Heading()

	timer := r.monitor.StartStage(monitoring.StageSky)
	DrawSky(r.back, r.world.Sky, heading)
	timer.End()

	timer = r.monitor.StartStage(monitoring.StageFlats)
	view := FlatView{PosX: r.camera.PosX, PosY: r.camera.PosY, Heading: heading}
	lo, hi := FlatRows(r.height)
	r.parallel(lo, hi, func(lo, hi int) {
		DrawFlats(r.back, r.world, r.shading, view, lo, hi)
	})
	timer.End()

	timer = r.monitor.StartStage(monitoring.StageWalls)
	r.parallel(0, r.width, func(lo, hi int) {
		DrawWalls(r.back, r.rays, r.world.Textures, r.shading, lo, hi)
	})
	timer.End()
}

// Frame runs one full frame: update, cast, paint and publish. A cast
// error leaves the previously published frame in place.
func (r *Renderer) Frame(in Input) error {
	ft := r.monitor.StartFrame()
	defer ft.EndFrame()

	r.Update(in)
	if err := r.CastWalls(); err != nil {
		return err
	}
	r.Paint()
	r.back, r.front = r.front, r.back
	return nil
}

// Spans this short are painted inline; handing them to the pool costs more
// than it saves.
const minParallelSpan = 8

func (r *Renderer) parallel(start, end int, fn func(lo, hi int)) {
	if r.pool == nil || end-start <= minParallelSpan {
		fn(start, end)
		return
	}
	r.pool.ParallelRange(start, end, fn)
}

// Pixels returns the last published frame. It stays untouched until the
// next call to Frame.
func (r *Renderer) Pixels() *pixel.Buffer { return r.front }

// Rays returns the rays cast for the last frame, one per column.
func (r *Renderer) Rays() []Ray { return r.rays }

// Camera returns a copy of the current camera.
func (r *Renderer) Camera() Camera { return r.camera }


// Monitor returns the performance monitor fed by Frame.
func (r *Renderer) Monitor() *monitoring.PerformanceMonitor { return r.monitor }

// Workers returns how many goroutines paint a frame.
func (r *Renderer) Workers() int {
	if r.pool == nil {
		return 1
	}
	return r.pool.GetNumWorkers()
}

// Size returns the render resolution.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Map returns the map being rendered.
func (r *Renderer) Map() *world.Map { return r.world }
