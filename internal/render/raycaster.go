package render

import (
	"errors"
	"fmt"
	"math"

	"raycaster/internal/world"
)

// ErrRayEscaped means a ray left the grid without hitting a wall. Validated
// maps are enclosed, so this only happens when the camera is outside the map.
var ErrRayEscaped = errors.New("ray escaped the map")

// Side records which family of grid lines a ray crossed last.
type Side uint8

const (
	// SideX is a wall face perpendicular to the x axis.
	SideX Side = iota
	// SideY is a wall face perpendicular to the y axis.
	SideY
)

// minPerpDistance keeps the projected line height finite when the camera
// sits exactly on a wall face.
const minPerpDistance = 1e-4

// Ray is the wall hit for one screen column.
type Ray struct {
	Column       int
	Depth        float64 // perpendicular distance in cells
	LineHeight   int
	DrawStart    int // first row of the wall span
	DrawEnd      int // one past the last row
	TextureIndex int
	TextureX     int
	Side         Side
}

// CastWalls fills rays[x] for every column x of a width x height view,
// where width is len(rays).
func CastWalls(cam Camera, m *world.Map, rays []Ray, height int) error {
	width := len(rays)
	for x := range rays {
		if err := castColumn(cam, m, x, width, height, &rays[x]); err != nil {
			return err
		}
	}
	return nil
}

func castColumn(cam Camera, m *world.Map, x, width, height int, ray *Ray) error {
	cameraX := 2*float64(x)/float64(width) - 1
	rayDirX := cam.DirX + cam.PlaneX*cameraX
	rayDirY := cam.DirY + cam.PlaneY*cameraX

	mapX := int(cam.PosX)
	mapY := int(cam.PosY)

	// Distance along the ray between two grid lines of the same family.
	var deltaDistX, deltaDistY float64
	if rayDirX == 0 {
		deltaDistX = 1e30
	} else {
		deltaDistX = math.Abs(1 / rayDirX)
	}
	if rayDirY == 0 {
		deltaDistY = 1e30
	} else {
		deltaDistY = math.Abs(1 / rayDirY)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDirX < 0 {
		stepX = -1
		sideDistX = (cam.PosX - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - cam.PosX) * deltaDistX
	}
	if rayDirY < 0 {
		stepY = -1
		sideDistY = (cam.PosY - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - cam.PosY) * deltaDistY
	}

	side := SideX
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = SideX
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = SideY
		}
		if !m.InBounds(mapX, mapY) {
			return fmt.Errorf("%w: column %d at cell (%d,%d)", ErrRayEscaped, x, mapX, mapY)
		}
		if m.Walls[mapX][mapY] >= 0 {
			break
		}
	}

	var perp float64
	if side == SideX {
		perp = (float64(mapX) - cam.PosX + float64(1-stepX)/2) / rayDirX
	} else {
		perp = (float64(mapY) - cam.PosY + float64(1-stepY)/2) / rayDirY
	}
	if perp < minPerpDistance {
		perp = minPerpDistance
	}

	lineHeight := int(float64(height) / perp)
	drawStart := -lineHeight/2 + height/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd := lineHeight/2 + height/2
	if drawEnd > height {
		drawEnd = height
	}

	var wallX float64
	if side == SideX {
		wallX = cam.PosY + perp*rayDirY
	} else {
		wallX = cam.PosX + perp*rayDirX
	}
	wallX -= math.Floor(wallX)

	texX := int(wallX * world.TileSize)
	if texX >= world.TileSize {
		texX = world.TileSize - 1
	}
	if (side == SideX && rayDirX > 0) || (side == SideY && rayDirY < 0) {
		texX = world.TileSize - texX - 1
	}

	*ray = Ray{
		Column:       x,
		Depth:        perp,
		LineHeight:   lineHeight,
		DrawStart:    drawStart,
		DrawEnd:      drawEnd,
		TextureIndex: m.Walls[mapX][mapY],
		TextureX:     texX,
		Side:         side,
	}
	return nil
}
