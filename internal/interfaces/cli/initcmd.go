package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// Configuration templates emitted by the init command.  Key order and
// spelling (notably "nBits") match the documents the descriptor commands
// consume, so an emitted template round-trips without edits.
var initTemplates = map[string]map[string]interface{}{
	"circus": {
		"name":        "CircuS Descriptors",
		"description": "Basic CircuS molecular descriptors",
		"descriptor": map[string]interface{}{
			"type":    "circus",
			"lower":   0,
			"upper":   3,
			"on_bond": false,
			"fmt":     "smiles",
		},
	},
	"rdkit": {
		"name":        "Fingerprint Descriptors",
		"description": "Hashed molecular fingerprints",
		"descriptor": map[string]interface{}{
			"type":    "rdkit",
			"fp_type": "morgan",
			"nBits":   1024,
			"radius":  2,
			"fmt":     "smiles",
		},
	},
	"complex": {
		"name":        "Complex Multi-Column Descriptors",
		"description": "Composite descriptors over multiple molecular columns",
		"associator": []interface{}{
			[]interface{}{"molecules", map[string]interface{}{"type": "circus", "lower": 0, "upper": 2}},
		},
		"structure_columns": []string{"molecules"},
		"fmt":               "smiles",
	},
}

func newInitCmd() *cobra.Command {
	var descriptorType, outputFile string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize descriptor configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, ok := initTemplates[descriptorType]
			if !ok {
				return errors.Newf(errors.CodeInvalidParam,
					"unknown descriptor type %q; supported: circus, rdkit, complex", descriptorType)
			}

			data, err := json.MarshalIndent(tmpl, "", "  ")
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeSerialization,
					"failed to encode configuration template")
			}
			if err := os.WriteFile(outputFile, append(data, '\n'), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeIO,
					"failed to write configuration file "+outputFile)
			}

			PrintSuccess(cmd, "configuration file created: "+outputFile)
			cmd.Println("edit this file to customize your " + descriptorType + " setup")
			return nil
		},
	}

	cmd.Flags().StringVar(&descriptorType, "descriptor-type", "circus",
		"type of descriptor configuration to generate (circus, rdkit, complex)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "moldesc_config.json",
		"output configuration file")
	return cmd
}
