// Package preview renders a mesh to a PNG image without a GPU. Faces are
// tinted by their side of an optional plane and seam edges are outlined.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
)

var (
	Background = color.RGBA{30, 30, 36, 255}
	BelowColor = color.RGBA{70, 130, 220, 255}
	AboveColor = color.RGBA{230, 140, 60, 255}
	OnColor    = color.RGBA{170, 170, 170, 255}
	SeamColor  = color.RGBA{240, 40, 40, 255}
	TextColor  = color.RGBA{230, 230, 230, 255}
)

// Options control a render
type Options struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the size and scales down
	Supersample int
	// Elevation and Azimuth orbit the camera, in radians
	Elevation float64
	Azimuth   float64
	// Plane, when set, tints faces by side
	Plane     *geometry.Plane
	Tolerance float64
	// Seam vertices; edges joining two of them are outlined
	Seam    []int
	Caption string
}

// DefaultOptions returns an 800x600 three-quarter view
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 2,
		Elevation:   math.Pi / 6,
		Azimuth:     math.Pi / 4,
		Tolerance:   geometry.DefaultTolerance,
	}
}

// Render draws m and returns the image
func Render(m *mesh.Mesh, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	ss := max(opts.Supersample, 1)
	w, h := opts.Width*ss, opts.Height*ss

	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}

	cv := newCanvas(w, h, Background)
	if !bbox.IsEmpty() {
		cam := NewCamera(bbox)
		cam.Rotate(opts.Elevation, opts.Azimuth)
		drawMesh(cv, cam, m, opts)
	}

	out := cv.img
	if ss > 1 {
		out = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		xdraw.CatmullRom.Scale(out, out.Bounds(), cv.img, cv.img.Bounds(), xdraw.Src, nil)
	}

	if opts.Caption != "" {
		d := &font.Drawer{
			Dst:  out,
			Src:  image.NewUniform(TextColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, 8+basicfont.Face7x13.Ascent),
		}
		d.DrawString(opts.Caption)
	}

	return out, nil
}

func drawMesh(cv *canvas, cam *Camera, m *mesh.Mesh, opts Options) {
	bounds := cv.img.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())
	forward := cam.Forward()

	projected := make([]screenPoint, len(m.Vertices))
	for i, v := range m.Vertices {
		x, y, z := cam.Project(v, width, height)
		projected[i] = screenPoint{x, y, z}
	}

	for i, tri := range m.Triangles {
		facet := m.Facet(i)
		base := faceColor(facet, opts)

		// Two-sided Lambert shading
		intensity := 0.3
		if n := facet.Normal(); !n.IsZero() {
			intensity += 0.7 * math.Abs(n.Normalize().Dot(forward))
		}

		cv.fillTriangle([3]screenPoint{projected[tri[0]], projected[tri[1]], projected[tri[2]]}, shade(base, intensity))
	}

	if len(opts.Seam) == 0 {
		return
	}
	onSeam := make(map[int]bool, len(opts.Seam))
	for _, vi := range opts.Seam {
		onSeam[vi] = true
	}
	drawn := make(map[mesh.EdgeKey]bool)
	for _, tri := range m.Triangles {
		for _, key := range tri.Edges() {
			if !onSeam[key.A] || !onSeam[key.B] || drawn[key] {
				continue
			}
			drawn[key] = true
			cv.drawLine(projected[key.A], projected[key.B], SeamColor)
		}
	}
}

func faceColor(facet geometry.Triangle, opts Options) color.RGBA {
	if opts.Plane == nil {
		return OnColor
	}
	switch opts.Plane.Side(facet.Center(), opts.Tolerance) {
	case -1:
		return BelowColor
	case 1:
		return AboveColor
	default:
		return OnColor
	}
}

func shade(c color.RGBA, intensity float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*intensity))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

// SavePNG writes img to path
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return file.Close()
}
