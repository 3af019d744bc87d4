package render

import "math"

// Input is the movement intent for one frame.
type Input struct {
	Forward     bool
	Backward    bool
	RotateLeft  bool
	RotateRight bool
}

// Nominal per-frame timing. The step is applied once per Update regardless
// of how long the frame actually took.
const (
	DefaultFrameTime = 0.05
	DefaultMoveSpeed = 3.0 // cells per second
	DefaultRotSpeed  = 1.0 // radians per second
)

// Step is the distance and angle applied per frame of held input.
type Step struct {
	Move   float64
	Rotate float64
}

// NewStep derives a per-frame step from a nominal frame time and speeds.
func NewStep(frameTime, moveSpeed, rotSpeed float64) Step {
	return Step{
		Move:   frameTime * moveSpeed,
		Rotate: frameTime * rotSpeed,
	}
}

// DefaultStep moves 0.15 cells and turns 0.05 rad per frame.
var DefaultStep = NewStep(DefaultFrameTime, DefaultMoveSpeed, DefaultRotSpeed)

// Walls answers collision queries. Off-grid cells must report blocking.
type Walls interface {
	IsTileBlocking(x, y int) bool
}

// Camera is the viewer: a position, a unit facing direction and the
// camera plane perpendicular to it. The plane length sets the field of view.
type Camera struct {
	PosX, PosY     float64
	DirX, DirY     float64
	PlaneX, PlaneY float64
}

// NewCamera places a camera facing -x with a 0.66 camera plane.
func NewCamera(posX, posY float64) Camera {
	return Camera{
		PosX:   posX,
		PosY:   posY,
		DirX:   -1,
		DirY:   0,
		PlaneX: 0,
		PlaneY: 0.66,
	}
}

// Apply integrates one frame of input in a fixed order: forward, backward,
// rotate right, rotate left. Each axis of a move is tested against the wall
// grid on its own, so blocked motion slides along walls.
func (c *Camera) Apply(in Input, step Step, walls Walls) {
	if in.Forward {
		c.move(step.Move, walls)
	}
	if in.Backward {
		c.move(-step.Move, walls)
	}
	if in.RotateRight {
		c.Rotate(-step.Rotate)
	}
	if in.RotateLeft {
		c.Rotate(step.Rotate)
	}
}

func (c *Camera) move(dist float64, walls Walls) {
	candX := c.PosX + c.DirX*dist
	if !walls.IsTileBlocking(cell(candX), cell(c.PosY)) {
		c.PosX = candX
	}
	candY := c.PosY + c.DirY*dist
	if !walls.IsTileBlocking(cell(c.PosX), cell(candY)) {
		c.PosY = candY
	}
}

// cell truncates toward zero, except that negative coordinates map to -1 so
// they are seen as off the grid.
func cell(v float64) int {
	if v < 0 {
		return -1
	}
	return int(v)
}

// Rotate turns the direction and the camera plane together by angle
// radians. Positive angles turn left.
func (c *Camera) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)

	oldDirX := c.DirX
	c.DirX = c.DirX*cos - c.DirY*sin
	c.DirY = oldDirX*sin + c.DirY*cos

	oldPlaneX := c.PlaneX
	c.PlaneX = c.PlaneX*cos - c.PlaneY*sin
	c.PlaneY = oldPlaneX*sin + c.PlaneY*cos
}

// Heading is the facing angle in radians used by the sky and flat passes:
// zero when facing -x, in (-π, π].
func (c *Camera) Heading() float64 {
	return math.Atan2(c.DirY, -c.DirX)
}

// HeadingDegrees is Heading in degrees wrapped into [0, 360).
func (c *Camera) HeadingDegrees() float64 {
	deg := c.Heading() * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
