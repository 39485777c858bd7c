// Package app runs cut sessions: load a mesh and a plane, cut, verify and
// save, once or every time an input changes.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/philipparndt/gocut/internal/config"
	"github.com/philipparndt/gocut/pkg/analysis"
	"github.com/philipparndt/gocut/pkg/mesh"
	"github.com/philipparndt/gocut/pkg/planefile"
	"github.com/philipparndt/gocut/pkg/watcher"
)

// Session cuts one mesh file by one plane file
type Session struct {
	MeshPath  string
	PlanePath string
	Config    *config.Config
	Log       *zap.Logger
}

// Report describes one completed run
type Report struct {
	Result mesh.Result
	// Verification is set when cut.verify is enabled
	Verification *analysis.PlaneReport
	Output       string
	// WatchFiles are the inputs the run read
	WatchFiles []string
}

// NewSession creates a session. A nil config means defaults, a nil logger
// discards output.
func NewSession(meshPath, planePath string, cfg *config.Config, log *zap.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		MeshPath:  meshPath,
		PlanePath: planePath,
		Config:    cfg,
		Log:       log,
	}
}

// Run performs a single load, cut and save
func (s *Session) Run(ctx context.Context) (*Report, error) {
	m, watchFiles, err := LoadMesh(ctx, s.MeshPath)
	if err != nil {
		return nil, err
	}

	plane, err := planefile.Load(s.PlanePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plane: %w", err)
	}

	s.Log.Info("before cut",
		zap.String("mesh", s.MeshPath),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)

	cutter := &mesh.Cutter{
		Tolerance:        s.Config.Cut.Tolerance,
		AllowOriginPlane: s.Config.Cut.AllowOriginPlane,
		Logger:           s.Log.Named("cut"),
	}
	result := cutter.Cut(m, plane)
	if result.Skipped {
		s.Log.Warn("plane origin is (0, 0, 0), mesh left unchanged; set cut.allow_origin_plane to cut through the origin")
	}

	s.Log.Info("after cut",
		zap.Int("vertices", result.VerticesAfter),
		zap.Int("triangles", result.TrianglesAfter),
		zap.Int("splits", result.Splits),
		zap.Int("seamVertices", len(result.Seam)),
	)

	report := &Report{
		Result:     result,
		Output:     s.Config.Output.Path,
		WatchFiles: append(watchFiles, s.PlanePath),
	}

	if s.Config.Cut.Verify {
		pr := analysis.ClassifyPlane(m, plane, s.Config.Cut.VerifyTolerance)
		report.Verification = &pr
		if pr.Straddling > 0 {
			s.Log.Warn("triangles still straddle the plane",
				zap.Int("count", pr.Straddling),
				zap.Ints("indices", pr.StraddlingIndices),
			)
		} else {
			s.Log.Info("verified", zap.Int("below", pr.Below), zap.Int("above", pr.Above), zap.Int("touching", pr.Touching))
		}
	}

	if err := SaveMesh(s.Config.Output.Path, s.Config.Output.Format, m); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", s.Config.Output.Path, err)
	}
	s.Log.Info("saved", zap.String("output", s.Config.Output.Path))

	return report, nil
}

// Watch runs the session, then runs it again whenever the mesh, one of its
// OpenSCAD dependencies or the plane file changes. It returns when ctx is
// cancelled. Failed reruns are logged and watching continues.
func (s *Session) Watch(ctx context.Context) error {
	if samePath(s.MeshPath, s.Config.Output.Path) {
		return fmt.Errorf("output %s would overwrite the watched input", s.Config.Output.Path)
	}

	report, err := s.Run(ctx)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(s.Config.Watch.Debounce, s.Log.Named("watcher"))
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(path string) {
		select {
		case changes <- path:
		default:
		}
	}

	if err := fw.Watch(report.WatchFiles, notify); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}
	fw.Start()
	s.Log.Info("watching for changes", zap.Strings("files", fw.Files()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-changes:
			s.Log.Info("file changed", zap.String("file", changed))

			report, err := s.Run(ctx)
			if err != nil {
				s.Log.Error("rerun failed", zap.Error(err))
				continue
			}

			// OpenSCAD includes may have changed
			if err := fw.RemoveAll(); err != nil {
				return fmt.Errorf("failed to reset watcher: %w", err)
			}
			if err := fw.Watch(report.WatchFiles, notify); err != nil {
				return fmt.Errorf("failed to watch files: %w", err)
			}
		}
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
