package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gocut/internal/app"
	"github.com/philipparndt/gocut/internal/logger"
	"github.com/philipparndt/gocut/pkg/geometry"
	"github.com/philipparndt/gocut/pkg/mesh"
	"github.com/philipparndt/gocut/pkg/planefile"
	"github.com/philipparndt/gocut/pkg/preview"
)

var (
	previewPlane     string
	previewOutput    string
	previewCut       bool
	previewWidth     int
	previewHeight    int
	previewElevation float64
	previewAzimuth   float64
)

var previewCmd = &cobra.Command{
	Use:   "preview <mesh>",
	Short: "Render a mesh to a PNG image",
	Long: `Render a mesh to a PNG image. With --plane, faces are tinted by the side of
the plane they lie on. With --cut as well, the mesh is cut first and the seam
is outlined.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewPlane, "plane", "p", "", "Plane file to tint faces by")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "Output PNG file")
	previewCmd.Flags().BoolVar(&previewCut, "cut", false, "Cut the mesh by the plane before rendering")
	previewCmd.Flags().IntVar(&previewWidth, "width", 800, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 600, "Image height in pixels")
	previewCmd.Flags().Float64Var(&previewElevation, "elevation", 30, "Camera elevation in degrees")
	previewCmd.Flags().Float64Var(&previewAzimuth, "azimuth", 45, "Camera azimuth in degrees")
}

func runPreview(cmd *cobra.Command, args []string) error {
	if previewCut && previewPlane == "" {
		return fmt.Errorf("--cut needs --plane")
	}

	m, _, err := app.LoadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Width = previewWidth
	opts.Height = previewHeight
	opts.Elevation = previewElevation * math.Pi / 180
	opts.Azimuth = previewAzimuth * math.Pi / 180
	opts.Tolerance = cfg.Cut.VerifyTolerance
	opts.Caption = fmt.Sprintf("%d vertices, %d triangles", m.VertexCount(), m.TriangleCount())

	if previewPlane != "" {
		plane, err := planefile.Load(previewPlane)
		if err != nil {
			return fmt.Errorf("failed to load plane: %w", err)
		}
		opts.Plane = &plane

		if previewCut {
			result := cutForPreview(m, plane)
			opts.Seam = result.Seam
			opts.Caption = fmt.Sprintf("%d vertices, %d triangles, %d splits", result.VerticesAfter, result.TrianglesAfter, result.Splits)
		}
	}

	img, err := preview.Render(m, opts)
	if err != nil {
		return err
	}
	if err := preview.SavePNG(previewOutput, img); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", previewOutput)
	return nil
}

func cutForPreview(m *mesh.Mesh, plane geometry.Plane) mesh.Result {
	cutter := &mesh.Cutter{
		Tolerance:        cfg.Cut.Tolerance,
		AllowOriginPlane: cfg.Cut.AllowOriginPlane,
		Logger:           logger.Named("cut"),
	}
	return cutter.Cut(m, plane)
}
