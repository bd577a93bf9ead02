package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/MolDesc-Toolkit/internal/application/modelops"
	"github.com/turtacn/MolDesc-Toolkit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Model optimization and rebuilding tools",
	}
	cmd.AddCommand(newOptimizeCmd(), newRebuildCmd())
	return cmd
}

// optimizeConfig is the JSON document the optimize command consumes.  Field
// names follow the configuration files of the original workflow.
type optimizeConfig struct {
	DataDir   string `json:"data_dir"`
	OutputDir string `json:"output_dir"`
	Method    string `json:"method,omitempty"`
	Trials    int    `json:"trials,omitempty"`
	Timeout   int    `json:"timeout,omitempty"`
	Jobs      int    `json:"jobs,omitempty"`
}

func newOptimizeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize model hyperparameters over precomputed descriptor tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(configFile)
			if err != nil {
				return errors.Wrap(err, errors.CodeInvalidConfig,
					"failed to read optimization config "+configFile)
			}
			var cfg optimizeConfig
			if err := json.Unmarshal(data, &cfg); err != nil {
				return errors.Wrap(err, errors.CodeInvalidConfig,
					"failed to parse optimization config "+configFile)
			}

			var optimizer modelops.Optimizer = modelops.UnavailableOptimizer{}
			report, err := optimizer.Optimize(cmd.Context(), modelops.OptimizeRequest{
				DataDir:   cfg.DataDir,
				OutputDir: cfg.OutputDir,
				Method:    cfg.Method,
				Trials:    cfg.Trials,
				Timeout:   cfg.Timeout,
				Jobs:      cfg.Jobs,
			})
			if err != nil {
				cliCtx.Logger.Error("optimization failed", logging.Err(err))
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("best score %.4f after %d trials, model saved to %s",
				report.BestScore, report.TrialsRun, report.ModelArtifact))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "JSON configuration file for model optimization")
	cmd.MarkFlagRequired("config")
	return cmd
}

func newRebuildCmd() *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild a deployable model from optimization results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			var rebuilder modelops.Rebuilder = modelops.UnavailableRebuilder{}
			report, err := rebuilder.Rebuild(cmd.Context(), modelops.RebuildRequest{
				ResultsDir: inputDir,
				OutputPath: outputDir,
			})
			if err != nil {
				cliCtx.Logger.Error("rebuild failed", logging.Err(err))
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("model with %d features rebuilt to %s",
				report.FeatureWidth, report.ModelArtifact))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "directory containing optimization results")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory for rebuilt models")
	cmd.MarkFlagRequired("input-dir")
	cmd.MarkFlagRequired("output-dir")
	return cmd
}
