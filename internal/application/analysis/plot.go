package analysis

import (
	"github.com/turtacn/MolDesc-Toolkit/internal/domain/dataset"
	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// ChartRenderer renders tabular charts to image files.
type ChartRenderer interface {
	Scatter(xs, ys []float64, xLabel, yLabel, title, path string) error
	Histogram(values []float64, label, title, path string) error
	Correlation(xs, ys []float64, xLabel, yLabel, path string) error
}

// PlotKind selects which chart a plot run produces.
type PlotKind string

const (
	PlotScatter     PlotKind = "scatter"
	PlotHistogram   PlotKind = "histogram"
	PlotCorrelation PlotKind = "correlation"
)

// ParsePlotKind converts a CLI argument to a PlotKind.
func ParsePlotKind(s string) (PlotKind, error) {
	switch PlotKind(s) {
	case PlotScatter, PlotHistogram, PlotCorrelation:
		return PlotKind(s), nil
	default:
		return "", errors.Newf(errors.CodeInvalidParam,
			"unknown plot kind %q; supported: scatter, histogram, correlation", s)
	}
}

// PlotRequest describes one chart over a delimited input table.
type PlotRequest struct {
	Kind       PlotKind
	InputPath  string
	Separator  string
	XColumn    string
	YColumn    string // unused for histograms
	OutputPath string
	Title      string
}

// PlotService renders charts from tabular data through an injected renderer.
type PlotService struct {
	log      logging.Logger
	renderer ChartRenderer
}

// NewPlotService constructs a PlotService.
func NewPlotService(log logging.Logger, renderer ChartRenderer) *PlotService {
	if log == nil {
		log = logging.Default()
	}
	return &PlotService{log: log.Named("plot"), renderer: renderer}
}

// Run loads the input table, extracts the requested numeric columns, and
// renders the chart.  Column extraction failures surface as MissingColumn or
// FileFormat errors before any rendering starts.
func (s *PlotService) Run(req PlotRequest) error {
	if s.renderer == nil {
		return errors.Internal("no chart renderer configured")
	}
	if req.OutputPath == "" {
		return errors.InvalidParam("plot output path must not be empty")
	}

	table, err := dataset.Load(req.InputPath, req.Separator)
	if err != nil {
		return err
	}

	xs, err := table.NumericColumn(req.XColumn)
	if err != nil {
		return err
	}

	switch req.Kind {
	case PlotHistogram:
		err = s.renderer.Histogram(xs, req.XColumn, req.Title, req.OutputPath)
	case PlotScatter, PlotCorrelation:
		var ys []float64
		ys, err = table.NumericColumn(req.YColumn)
		if err != nil {
			return err
		}
		if req.Kind == PlotScatter {
			err = s.renderer.Scatter(xs, ys, req.XColumn, req.YColumn, req.Title, req.OutputPath)
		} else {
			err = s.renderer.Correlation(xs, ys, req.XColumn, req.YColumn, req.OutputPath)
		}
	default:
		return errors.Newf(errors.CodeInvalidParam, "unknown plot kind %q", req.Kind)
	}
	if err != nil {
		return err
	}

	s.log.Info("plot written",
		logging.String("kind", string(req.Kind)),
		logging.String("path", req.OutputPath),
		logging.Int("points", len(xs)))
	return nil
}
