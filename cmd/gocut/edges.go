package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gocut/internal/app"
	"github.com/philipparndt/gocut/pkg/analysis"
)

var (
	edgesCount     int
	edgesShortest  bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges <mesh>",
	Short: "List the longest or shortest edges of a mesh",
	Long:  "Find and measure edges, including longest, shortest, or edges within a specific length range. Useful for spotting slivers a cut left behind.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges instead of longest")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
}

func runEdges(cmd *cobra.Command, args []string) error {
	m, _, err := app.LoadMesh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(m)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	default:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	for i, e := range edges {
		fmt.Fprintf(out, "%3d. %d-%d  %s  %s -> %s  faces %d\n",
			i+1, e.Key.A, e.Key.B, analysis.FormatMeasurement(e.Length, ""),
			analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.Faces)
	}
	return nil
}
