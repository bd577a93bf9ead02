// Package descriptor wires the descriptor pipeline end to end: load the
// input table, extract identifiers and structures, fit and apply the
// configured transformer, assemble the ID-prefixed output table, and write
// it.  The package owns orchestration and logging only; all computation
// lives in the domain packages.
package descriptor

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	domdesc "github.com/turtacn/MolDesc-Toolkit/internal/domain/descriptor"
	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Request carries the table-level parameters shared by every pipeline run.
type Request struct {
	// InputPath is the delimited input table.
	InputPath string

	// OutputPath is the CSV destination for the assembled feature table.
	OutputPath string

	// Separator is the input field separator (single character).
	Separator string

	// StructureColumn names the column holding structure strings.
	StructureColumn string

	// IDColumn names the identifier column; a missing column yields synthetic
	// 0..N-1 identifiers.
	IDColumn string
}

// Report summarizes one finished pipeline run.
type Report struct {
	RunID       string
	Rows        int
	Features    int
	OutputPath  string
	Elapsed     time.Duration
	FeatureName []string
}

// Service runs descriptor pipelines.
type Service struct {
	log logging.Logger
}

// NewService constructs a Service.  A nil logger falls back to the process
// default.
func NewService(log logging.Logger) *Service {
	if log == nil {
		log = logging.Default()
	}
	return &Service{log: log.Named("descriptor")}
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-column runs
// ─────────────────────────────────────────────────────────────────────────────

// RunCircus computes circular-substructure counts for one structure column.
func (s *Service) RunCircus(req Request, lower, upper int, onBond bool) (*Report, error) {
	spec := domdesc.Spec{Kind: "circus", Lower: lower, Upper: upper, OnBond: onBond}
	return s.runSingle(req, spec)
}

// RunFingerprint computes a hashed fingerprint table for one structure column.
func (s *Service) RunFingerprint(req Request, fpType string, nBits, radius int) (*Report, error) {
	spec := domdesc.Spec{Kind: "fingerprint", FPType: fpType, NBits: nBits, Radius: radius}
	return s.runSingle(req, spec)
}

// runSingle drives the load → extract → fit → transform → assemble → write
// pipeline for a single-column transformer spec.
func (s *Service) runSingle(req Request, spec domdesc.Spec) (*Report, error) {
	runID := uuid.NewString()
	log := s.log.With(logging.String("run_id", runID), logging.String("spec", spec.String()))
	start := time.Now()

	tr, err := domdesc.Build(spec)
	if err != nil {
		return nil, err
	}

	table, err := dataset.Load(req.InputPath, req.Separator)
	if err != nil {
		return nil, err
	}
	log.Debug("input table loaded",
		logging.String("path", req.InputPath), logging.Int("rows", table.NumRows()))

	ids, structures, err := dataset.Extract(table, req.IDColumn, req.StructureColumn)
	if err != nil {
		return nil, err
	}

	if err := tr.Fit(structures); err != nil {
		return nil, err
	}
	features, err := tr.Transform(structures)
	if err != nil {
		return nil, err
	}
	log.Debug("features computed",
		logging.Int("rows", features.NumRows()), logging.Int("features", features.NumColumns()))

	return s.assembleAndWrite(log, runID, start, req.OutputPath, ids, features)
}

// ─────────────────────────────────────────────────────────────────────────────
// Composite runs
// ─────────────────────────────────────────────────────────────────────────────

// RunComplex computes a multi-column composite descriptor table from a
// declarative configuration document.
func (s *Service) RunComplex(req Request, configPath string) (*Report, error) {
	runID := uuid.NewString()
	log := s.log.With(logging.String("run_id", runID), logging.String("config", configPath))
	start := time.Now()

	cfg, err := domdesc.LoadCompositeConfig(configPath)
	if err != nil {
		return nil, err
	}
	composite, err := domdesc.BuildComposite(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("composite transformer built",
		logging.Int("columns", len(composite.Columns())))

	table, err := dataset.Load(req.InputPath, req.Separator)
	if err != nil {
		return nil, err
	}

	var ids []string
	if table.HasColumn(req.IDColumn) {
		if ids, err = table.Column(req.IDColumn); err != nil {
			return nil, err
		}
	} else {
		ids = syntheticIDs(table.NumRows())
	}

	if err := composite.Fit(table); err != nil {
		return nil, err
	}
	features, err := composite.Transform(table)
	if err != nil {
		return nil, err
	}
	log.Debug("composite features computed",
		logging.Int("rows", features.NumRows()), logging.Int("features", features.NumColumns()))

	return s.assembleAndWrite(log, runID, start, req.OutputPath, ids, features)
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared tail of every run
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) assembleAndWrite(log logging.Logger, runID string, start time.Time,
	outputPath string, ids []string, features *dataset.FeatureTable) (*Report, error) {

	if outputPath == "" {
		return nil, errors.InvalidParam("output path must not be empty")
	}

	assembled, err := dataset.Assemble(ids, features)
	if err != nil {
		return nil, err
	}
	if err := dataset.WriteCSV(assembled, outputPath); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	log.Info("descriptor table written",
		logging.String("path", outputPath),
		logging.Int("rows", features.NumRows()),
		logging.Int("features", features.NumColumns()),
		logging.Duration("elapsed", elapsed))

	return &Report{
		RunID:       runID,
		Rows:        features.NumRows(),
		Features:    features.NumColumns(),
		OutputPath:  outputPath,
		Elapsed:     elapsed,
		FeatureName: features.Columns(),
	}, nil
}

func syntheticIDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
