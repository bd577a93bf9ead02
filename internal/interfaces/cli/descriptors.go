package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appdesc "github.com/turtacn/MolDesc-Toolkit/internal/application/descriptor"
	"github.com/turtacn/MolDesc-Toolkit/internal/config"
)

// descriptorFlags holds the table-level flags shared by the descriptor
// subcommands.  Flag defaults come from the built-in configuration defaults;
// a value from the config file wins only when the flag was not set.
type descriptorFlags struct {
	input        string
	output       string
	smilesColumn string
	idColumn     string
	separator    string
}

func (f *descriptorFlags) register(cmd *cobra.Command, withColumns bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "input file containing structures (CSV, TSV, or TXT)")
	fl.StringVarP(&f.output, "output", "o", "", "output file for descriptors (CSV)")
	fl.StringVar(&f.separator, "separator", config.DefaultSeparator, "input file separator")
	if withColumns {
		fl.StringVar(&f.smilesColumn, "smiles-column", config.DefaultSMILESColumn, "column name containing SMILES")
		fl.StringVar(&f.idColumn, "id-column", config.DefaultIDColumn, "column name containing molecule IDs")
	}
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
}

// request builds the pipeline request, letting unset flags fall back to the
// loaded configuration.
func (f *descriptorFlags) request(cmd *cobra.Command, cfg *config.Config) appdesc.Request {
	req := appdesc.Request{
		InputPath:       f.input,
		OutputPath:      f.output,
		Separator:       f.separator,
		StructureColumn: f.smilesColumn,
		IDColumn:        f.idColumn,
	}
	if !cmd.Flags().Changed("separator") {
		req.Separator = cfg.Descriptor.Separator
	}
	if !cmd.Flags().Changed("smiles-column") {
		req.StructureColumn = cfg.Descriptor.SMILESColumn
	}
	if !cmd.Flags().Changed("id-column") {
		req.IDColumn = cfg.Descriptor.IDColumn
	}
	return req
}

func newDescriptorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "descriptors",
		Short: "Calculate molecular descriptors from chemical structures",
	}
	cmd.AddCommand(newCircusCmd(), newRDKitCmd(), newComplexCmd())
	return cmd
}

func newCircusCmd() *cobra.Command {
	flags := &descriptorFlags{}
	var lower, upper int
	var onBond bool

	cmd := &cobra.Command{
		Use:   "circus",
		Short: "Calculate CircuS circular-substructure descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lower") {
				lower = cliCtx.Config.Descriptor.Lower
			}
			if !cmd.Flags().Changed("upper") {
				upper = cliCtx.Config.Descriptor.Upper
			}

			svc := appdesc.NewService(cliCtx.Logger)
			report, err := svc.RunCircus(flags.request(cmd, cliCtx.Config), lower, upper, onBond)
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("calculated %d descriptors for %d molecules, saved to %s",
				report.Features, report.Rows, report.OutputPath))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&lower, "lower", config.DefaultCircusLower, "lower bound for fragment radius")
	cmd.Flags().IntVar(&upper, "upper", config.DefaultCircusUpper, "upper bound for fragment radius")
	cmd.Flags().BoolVar(&onBond, "on-bond", false, "calculate bond-centered descriptors instead of atom-centered")
	return cmd
}

func newRDKitCmd() *cobra.Command {
	flags := &descriptorFlags{}
	var fpType string
	var nBits, radius int

	cmd := &cobra.Command{
		Use:   "rdkit",
		Short: "Calculate hashed molecular fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("nbits") {
				nBits = cliCtx.Config.Descriptor.NBits
			}
			if !cmd.Flags().Changed("radius") {
				radius = cliCtx.Config.Descriptor.Radius
			}

			svc := appdesc.NewService(cliCtx.Logger)
			report, err := svc.RunFingerprint(flags.request(cmd, cliCtx.Config), fpType, nBits, radius)
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("calculated %d %s bits for %d molecules, saved to %s",
				report.Features, fpType, report.Rows, report.OutputPath))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&fpType, "fp-type", "morgan",
		"fingerprint type (morgan, atompairs, torsion, rdkfp, avalon)")
	cmd.Flags().IntVar(&nBits, "nbits", config.DefaultNBits, "number of bits in fingerprint")
	cmd.Flags().IntVar(&radius, "radius", config.DefaultRadius, "radius for Morgan fingerprints")
	return cmd
}

func newComplexCmd() *cobra.Command {
	flags := &descriptorFlags{}
	var configFile string

	cmd := &cobra.Command{
		Use:   "complex",
		Short: "Calculate multi-column composite descriptors from a JSON configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := appdesc.NewService(cliCtx.Logger)
			report, err := svc.RunComplex(flags.request(cmd, cliCtx.Config), configFile)
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("calculated %d total descriptors for %d rows, saved to %s",
				report.Features, report.Rows, report.OutputPath))
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "JSON configuration file for composite descriptor setup")
	cmd.MarkFlagRequired("config")
	return cmd
}
