package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gocut/internal/app"
	"github.com/philipparndt/gocut/internal/logger"
)

var (
	cutOutput           string
	cutFormat           string
	cutTolerance        float64
	cutVerifyTolerance  float64
	cutAllowOriginPlane bool
	cutVerify           bool
	cutWatch            bool
)

var cutCmd = &cobra.Command{
	Use:   "cut <mesh> <plane>",
	Short: "Cut a mesh along a plane and save the result",
	Long: `Cut every triangle of <mesh> that crosses the plane described in <plane>.

The mesh may be .obj, .stl or .scad (rendered with openscad). The plane file
is JSON, YAML or TOML with an origin and a normal:

  {"origin": [0, 0, 0.5], "normal": [0, 0, 1]}

A plane whose origin is exactly (0, 0, 0) leaves the mesh unchanged unless
--allow-origin-plane is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().StringVarP(&cutOutput, "output", "o", "output.obj", "Output file")
	cutCmd.Flags().StringVarP(&cutFormat, "format", "f", "", "Output format: obj or stl (default from the output extension)")
	cutCmd.Flags().Float64VarP(&cutTolerance, "tolerance", "t", 1e-5, "Minimum crossing parameter distance from an edge end")
	cutCmd.Flags().Float64Var(&cutVerifyTolerance, "verify-tolerance", 1e-6, "Distance from the plane counted as on it when verifying")
	cutCmd.Flags().BoolVar(&cutAllowOriginPlane, "allow-origin-plane", false, "Cut even when the plane origin is (0, 0, 0)")
	cutCmd.Flags().BoolVar(&cutVerify, "verify", false, "Check that no triangle straddles the plane after the cut")
	cutCmd.Flags().BoolVarP(&cutWatch, "watch", "w", false, "Cut again whenever an input file changes")
}

func runCut(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = cutOutput
	}
	if flags.Changed("format") {
		cfg.Output.Format = cutFormat
	}
	if flags.Changed("tolerance") {
		cfg.Cut.Tolerance = cutTolerance
	}
	if flags.Changed("verify-tolerance") {
		cfg.Cut.VerifyTolerance = cutVerifyTolerance
	}
	if flags.Changed("allow-origin-plane") {
		cfg.Cut.AllowOriginPlane = cutAllowOriginPlane
	}
	if flags.Changed("verify") {
		cfg.Cut.Verify = cutVerify
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	session := app.NewSession(args[0], args[1], cfg, logger.Named("session"))

	if cutWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return session.Watch(ctx)
	}

	report, err := session.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := report.Result
	if r.Skipped {
		fmt.Fprintln(out, "Plane origin is (0, 0, 0): mesh written unchanged")
	}
	fmt.Fprintf(out, "Vertices:  %d -> %d\n", r.VerticesBefore, r.VerticesAfter)
	fmt.Fprintf(out, "Triangles: %d -> %d\n", r.TrianglesBefore, r.TrianglesAfter)
	fmt.Fprintf(out, "Splits: %d (seam vertices %d, reused %d)\n", r.Splits, len(r.Seam), r.CacheHits)
	if v := report.Verification; v != nil {
		fmt.Fprintf(out, "Straddling after cut: %d\n", v.Straddling)
	}
	fmt.Fprintf(out, "Saved %s\n", report.Output)
	return nil
}
