package preview

import (
	"image"
	"image/color"
	"math"
)

// canvas is an RGBA image with a depth buffer
type canvas struct {
	img   *image.RGBA
	depth []float64
}

func newCanvas(width, height int, background color.RGBA) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.img.SetRGBA(x, y, background)
		}
	}
	return c
}

// plot writes col at (x, y) if z is nearer than what is there
func (c *canvas) plot(x, y int, z float64, col color.RGBA) {
	b := c.img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	idx := y*b.Max.X + x
	if z < c.depth[idx] {
		c.depth[idx] = z
		c.img.SetRGBA(x, y, col)
	}
}

type screenPoint struct {
	x, y, z float64
}

// fillTriangle scan-converts a triangle with depth interpolation
func (c *canvas) fillTriangle(p [3]screenPoint, col color.RGBA) {
	// Sort by y, top to bottom
	if p[0].y > p[1].y {
		p[0], p[1] = p[1], p[0]
	}
	if p[1].y > p[2].y {
		p[1], p[2] = p[2], p[1]
	}
	if p[0].y > p[1].y {
		p[0], p[1] = p[1], p[0]
	}

	bounds := c.img.Bounds()
	yStart := int(math.Max(0, math.Ceil(p[0].y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), p[2].y))

	edges := [3][2]screenPoint{{p[0], p[1]}, {p[1], p[2]}, {p[0], p[2]}}

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			a, b := e[0], e[1]
			if a.y == b.y || fy < a.y || fy > b.y || found == 2 {
				continue
			}
			t := (fy - a.y) / (b.y - a.y)
			xs[found] = a.x + t*(b.x-a.x)
			zs[found] = a.z + t*(b.z-a.z)
			found++
		}
		if found < 2 {
			continue
		}

		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		xFrom := int(math.Max(0, math.Ceil(xs[0])))
		xTo := int(math.Min(float64(bounds.Max.X-1), xs[1]))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			c.plot(x, y, zs[0]+t*(zs[1]-zs[0]), col)
		}
	}
}

// drawLine draws a Bresenham line, depth tested with a small bias so it
// wins over the faces it lies on
func (c *canvas) drawLine(a, b screenPoint, col color.RGBA) {
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	steps := max(dx, dy)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.plot(x1, y1, (a.z+t*(b.z-a.z))*0.999, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
