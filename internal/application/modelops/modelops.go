// Package modelops defines the model-training collaborator surface of the
// toolkit.  Hyperparameter optimization and model rebuilding run in an
// external training stack; the CLI owns only the request/report contract and
// dispatches through the interfaces below.  The bundled implementations
// report the capability as not implemented so the commands fail loudly with
// a stable error code instead of pretending to train.
package modelops

import (
	"context"

	"github.com/turtacn/MolDesc-Toolkit/internal/domain/descriptor"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Requests and reports
// ─────────────────────────────────────────────────────────────────────────────

// OptimizeRequest describes one hyperparameter-optimization run.
type OptimizeRequest struct {
	// DataDir holds the precomputed descriptor tables to search over.
	DataDir string

	// OutputDir receives trial results and the winning model artifact.
	OutputDir string

	// Method names the estimator family ("R" regression, "C" classification).
	Method string

	// Trials bounds the number of hyperparameter trials.
	Trials int

	// Timeout bounds one trial, in seconds.  Zero means no bound.
	Timeout int

	// Jobs is the trial parallelism degree.
	Jobs int
}

// OptimizeReport summarizes a finished optimization run.
type OptimizeReport struct {
	BestScore     float64
	BestParams    map[string]string
	TrialsRun     int
	ModelArtifact string
}

// RebuildRequest describes rebuilding a final model from a finished
// optimization run's best trial.
type RebuildRequest struct {
	// ResultsDir is the optimization output directory to rebuild from.
	ResultsDir string

	// OutputPath receives the rebuilt model artifact.
	OutputPath string

	// Descriptor optionally overrides the descriptor spec recorded in the
	// trial results.
	Descriptor *descriptor.Spec
}

// RebuildReport summarizes a finished rebuild.
type RebuildReport struct {
	ModelArtifact string
	FeatureWidth  int
}

// ─────────────────────────────────────────────────────────────────────────────
// Collaborator interfaces
// ─────────────────────────────────────────────────────────────────────────────

// Optimizer runs a hyperparameter search over precomputed descriptor tables.
type Optimizer interface {
	Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeReport, error)
}

// Rebuilder reassembles a deployable model from optimization results.
type Rebuilder interface {
	Rebuild(ctx context.Context, req RebuildRequest) (*RebuildReport, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Unavailable implementations
// ─────────────────────────────────────────────────────────────────────────────

// UnavailableOptimizer is the bundled Optimizer: it reports the training
// backend as not implemented.
type UnavailableOptimizer struct{}

// Optimize always fails with a NotImplemented-coded error.
func (UnavailableOptimizer) Optimize(_ context.Context, _ OptimizeRequest) (*OptimizeReport, error) {
	return nil, errors.NotImplemented(
		"hyperparameter optimization requires an external training backend")
}

// UnavailableRebuilder is the bundled Rebuilder counterpart.
type UnavailableRebuilder struct{}

// Rebuild always fails with a NotImplemented-coded error.
func (UnavailableRebuilder) Rebuild(_ context.Context, _ RebuildRequest) (*RebuildReport, error) {
	return nil, errors.NotImplemented(
		"model rebuilding requires an external training backend")
}
