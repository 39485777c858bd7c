package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gocut/internal/app"
	"github.com/philipparndt/gocut/pkg/analysis"
	"github.com/philipparndt/gocut/pkg/planefile"
)

var infoPlane string

var infoCmd = &cobra.Command{
	Use:   "info <mesh>",
	Short: "Display general information about a mesh",
	Long:  "Show counts, dimensions, surface area and edge statistics. With --plane, also show how the triangles sit relative to the plane.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoPlane, "plane", "p", "", "Plane file to classify the mesh against")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, _, err := app.LoadMesh(cmd.Context(), filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(m)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Mesh Information")
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d (boundary %d)\n", result.EdgeCount, result.BoundaryEdges)
	fmt.Fprintf(out, "  Watertight: %t\n", analysis.IsWatertight(m))
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if !result.BoundingBox.IsEmpty() {
		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(out, "Dimensions:")
		fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
		fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())
	}

	if result.EdgeCount > 0 {
		fmt.Fprintln(out, "Edge Lengths:")
		fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
		fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
		fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))
	}

	if infoPlane == "" {
		return nil
	}

	plane, err := planefile.Load(infoPlane)
	if err != nil {
		return fmt.Errorf("failed to load plane: %w", err)
	}
	report := analysis.ClassifyPlane(m, plane, cfg.Cut.VerifyTolerance)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Plane:")
	fmt.Fprintf(out, "  Origin: %s\n", analysis.FormatVector(plane.Origin))
	fmt.Fprintf(out, "  Normal: %s\n", analysis.FormatVector(plane.Normal))
	fmt.Fprintf(out, "  Below: %d\n", report.Below)
	fmt.Fprintf(out, "  Above: %d\n", report.Above)
	fmt.Fprintf(out, "  On plane: %d\n", report.OnPlane)
	fmt.Fprintf(out, "  Touching: %d\n", report.Touching)
	fmt.Fprintf(out, "  Straddling: %d\n", report.Straddling)
	fmt.Fprintf(out, "  Vertices on plane: %d\n", report.VerticesOnPlane)
	return nil
}
