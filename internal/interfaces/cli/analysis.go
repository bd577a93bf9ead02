package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/turtacn/MolDesc-Toolkit/internal/application/analysis"
	"github.com/turtacn/MolDesc-Toolkit/internal/config"
	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/plotting"
)

func newAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analysis",
		Short: "Chemical analysis and visualization tools",
	}
	cmd.AddCommand(newColorAtomCmd(), newPlotCmd())
	return cmd
}

func newColorAtomCmd() *cobra.Command {
	var modelFile, smiles, outputFile string

	cmd := &cobra.Command{
		Use:   "coloratom",
		Short: "Visualize atomic contributions to model predictions",
		Long: "Computes the contribution of every atom in a structure to a trained\n" +
			"model's prediction.  The descriptor configuration is taken from the\n" +
			"model artifact; supported descriptors are circus, morgan, and rdkfp.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			renderer := newRenderer(cliCtx.Config)
			svc := analysis.NewColorAtomService(cliCtx.Logger, renderer)

			attr, err := svc.Explain(modelFile, smiles, outputFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Analyzing SMILES: %s\n", attr.SMILES)
			fmt.Fprintf(cmd.OutOrStdout(), "Prediction: %.4f\n", attr.Prediction)
			printContributions(cmd, attr)
			if outputFile != "" {
				PrintSuccess(cmd, "visualization saved to "+outputFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFile, "model-file", "m", "", "trained model artifact (JSON)")
	cmd.Flags().StringVarP(&smiles, "smiles", "s", "", "SMILES string to analyze")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output image file (PNG, SVG, PDF)")
	cmd.MarkFlagRequired("model-file")
	cmd.MarkFlagRequired("smiles")
	return cmd
}

// printContributions writes one line per atom in index order.
func printContributions(cmd *cobra.Command, attr *analysis.Attribution) {
	indices := make([]int, 0, len(attr.Contributions))
	for i := range attr.Contributions {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s%-3d %+.4f\n",
			attr.AtomSymbols[i], i, attr.Contributions[i])
	}
}

func newPlotCmd() *cobra.Command {
	var inputFile, plotType, xColumn, yColumn, outputFile, separator string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Generate plots for data analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			kind, err := analysis.ParsePlotKind(plotType)
			if err != nil {
				return err
			}
			sep := separator
			if !cmd.Flags().Changed("separator") {
				sep = cliCtx.Config.Descriptor.Separator
			}

			svc := analysis.NewPlotService(cliCtx.Logger, newRenderer(cliCtx.Config))
			if err := svc.Run(analysis.PlotRequest{
				Kind:       kind,
				InputPath:  inputFile,
				Separator:  sep,
				XColumn:    xColumn,
				YColumn:    yColumn,
				OutputPath: outputFile,
			}); err != nil {
				return err
			}
			PrintSuccess(cmd, "plot saved to "+outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input data file for plotting")
	cmd.Flags().StringVar(&plotType, "plot-type", "scatter", "type of plot (scatter, histogram, correlation)")
	cmd.Flags().StringVar(&xColumn, "x-column", "", "X-axis column name")
	cmd.Flags().StringVar(&yColumn, "y-column", "", "Y-axis column name")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output image file")
	cmd.Flags().StringVar(&separator, "separator", config.DefaultSeparator, "input file separator")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("x-column")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newRenderer(cfg *config.Config) *plotting.Renderer {
	return plotting.NewRenderer(cfg.Plot.WidthInches, cfg.Plot.HeightInches, cfg.Plot.Bins)
}
