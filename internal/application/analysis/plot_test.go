package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MolDesc-Toolkit/internal/testutil"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// fakeChartRenderer records which chart was requested and with what data.
type fakeChartRenderer struct {
	kind string
	xs   []float64
	ys   []float64
	path string
}

func (f *fakeChartRenderer) Scatter(xs, ys []float64, _, _, _, path string) error {
	f.kind, f.xs, f.ys, f.path = "scatter", xs, ys, path
	return nil
}

func (f *fakeChartRenderer) Histogram(values []float64, _, _, path string) error {
	f.kind, f.xs, f.path = "histogram", values, path
	return nil
}

func (f *fakeChartRenderer) Correlation(xs, ys []float64, _, _, path string) error {
	f.kind, f.xs, f.ys, f.path = "correlation", xs, ys, path
	return nil
}

func plotInput(t *testing.T) string {
	return testutil.WriteTSV(t,
		[]string{"observed", "predicted"},
		[]string{"1.0", "1.1"},
		[]string{"2.0", "1.9"},
		[]string{"3.0", "3.2"})
}

func TestParsePlotKind(t *testing.T) {
	for _, s := range []string{"scatter", "histogram", "correlation"} {
		kind, err := ParsePlotKind(s)
		require.NoError(t, err)
		assert.Equal(t, PlotKind(s), kind)
	}

	_, err := ParsePlotKind("pie")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestPlotService_Scatter(t *testing.T) {
	renderer := &fakeChartRenderer{}
	svc := NewPlotService(logging.NewNopLogger(), renderer)

	err := svc.Run(PlotRequest{
		Kind:       PlotScatter,
		InputPath:  plotInput(t),
		Separator:  "\t",
		XColumn:    "observed",
		YColumn:    "predicted",
		OutputPath: "out.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "scatter", renderer.kind)
	assert.Equal(t, []float64{1, 2, 3}, renderer.xs)
	assert.Equal(t, []float64{1.1, 1.9, 3.2}, renderer.ys)
	assert.Equal(t, "out.png", renderer.path)
}

func TestPlotService_Histogram(t *testing.T) {
	renderer := &fakeChartRenderer{}
	svc := NewPlotService(logging.NewNopLogger(), renderer)

	err := svc.Run(PlotRequest{
		Kind:       PlotHistogram,
		InputPath:  plotInput(t),
		Separator:  "\t",
		XColumn:    "observed",
		OutputPath: "hist.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "histogram", renderer.kind)
	assert.Len(t, renderer.xs, 3)
}

func TestPlotService_Correlation(t *testing.T) {
	renderer := &fakeChartRenderer{}
	svc := NewPlotService(logging.NewNopLogger(), renderer)

	err := svc.Run(PlotRequest{
		Kind:       PlotCorrelation,
		InputPath:  plotInput(t),
		Separator:  "\t",
		XColumn:    "observed",
		YColumn:    "predicted",
		OutputPath: "corr.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "correlation", renderer.kind)
}

func TestPlotService_MissingColumn(t *testing.T) {
	svc := NewPlotService(logging.NewNopLogger(), &fakeChartRenderer{})

	err := svc.Run(PlotRequest{
		Kind:       PlotScatter,
		InputPath:  plotInput(t),
		Separator:  "\t",
		XColumn:    "absent",
		YColumn:    "predicted",
		OutputPath: "out.png",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMissingColumn))
}

func TestPlotService_NonNumericColumn(t *testing.T) {
	input := testutil.WriteTSV(t,
		[]string{"v"},
		[]string{"not-a-number"})
	svc := NewPlotService(logging.NewNopLogger(), &fakeChartRenderer{})

	err := svc.Run(PlotRequest{
		Kind: PlotHistogram, InputPath: input, Separator: "\t",
		XColumn: "v", OutputPath: "out.png",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeFileFormat))
}

func TestPlotService_EmptyOutputPath(t *testing.T) {
	svc := NewPlotService(logging.NewNopLogger(), &fakeChartRenderer{})
	err := svc.Run(PlotRequest{Kind: PlotScatter, InputPath: "x", XColumn: "a"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}
