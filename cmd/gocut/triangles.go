package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/philipparndt/gocut/internal/app"
	"github.com/philipparndt/gocut/pkg/analysis"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
)

type triangleInfo struct {
	Index     int
	Area      float64
	Perimeter float64
	Vertices  string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles <mesh>",
	Short: "Analyze the triangles of a mesh",
	Long:  "Display area, perimeter and corners of triangles. --smallest lists the slivers a cut close to a vertex produces.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) error {
	m, _, err := app.LoadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if m.TriangleCount() == 0 {
		return fmt.Errorf("%s has no triangles", args[0])
	}

	triangles := make([]triangleInfo, 0, m.TriangleCount())
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0

	for i := range m.Triangles {
		facet := m.Facet(i)
		area := facet.Area()

		triangles = append(triangles, triangleInfo{
			Index:     i,
			Area:      area,
			Perimeter: facet.Perimeter(),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatVector(facet.V1),
				analysis.FormatVector(facet.V2),
				analysis.FormatVector(facet.V3)),
		})

		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}

	var title string
	switch {
	case triLargest:
		slices.SortStableFunc(triangles, func(a, b triangleInfo) int { return cmpArea(b, a) })
		title = fmt.Sprintf("Top %d Largest Triangles", min(triCount, len(triangles)))
	case triSmallest:
		slices.SortStableFunc(triangles, cmpArea)
		title = fmt.Sprintf("Top %d Smallest Triangles", min(triCount, len(triangles)))
	default:
		title = fmt.Sprintf("First %d Triangles", min(triCount, len(triangles)))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total triangles: %d\n", len(triangles))
	fmt.Fprintf(out, "Total surface area: %.6f square units\n", totalArea)
	fmt.Fprintf(out, "Min triangle area: %.6f square units\n", minArea)
	fmt.Fprintf(out, "Max triangle area: %.6f square units\n", maxArea)
	fmt.Fprintf(out, "Avg triangle area: %.6f square units\n\n", totalArea/float64(len(triangles)))

	for _, tri := range triangles[:min(triCount, len(triangles))] {
		fmt.Fprintf(out, "Triangle #%d:\n", tri.Index)
		fmt.Fprintf(out, "  Area: %.6f square units\n", tri.Area)
		fmt.Fprintf(out, "  Perimeter: %.6f units\n", tri.Perimeter)
		fmt.Fprintf(out, "  Vertices: %s\n\n", tri.Vertices)
	}
	return nil
}

func cmpArea(a, b triangleInfo) int {
	switch {
	case a.Area < b.Area:
		return -1
	case a.Area > b.Area:
		return 1
	default:
		return 0
	}
}
