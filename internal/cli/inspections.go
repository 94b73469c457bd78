package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/inspect/inspections"
)

type inspectionsFlags struct {
	inspectionFormat string
	format           string
}

// inspectionInfo represents an inspection in JSON output.
type inspectionInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixes       []string `json:"fixes,omitempty"`
}

func newInspectionsCommand() *cobra.Command {
	flags := &inspectionsFlags{}

	cmd := &cobra.Command{
		Use:   "inspections",
		Short: "List available inspections",
		Long: `List all inspections with their IDs, descriptions, default severity and
the quick-fix families they offer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := inspections.NewRegistry().Inspections()

			if flags.format == string(config.FormatJSON) {
				return writeJSON(cmd.OutOrStdout(), describeInspections(all))
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())
			logger.Info("available inspections")

			format := config.InspectionFormat(flags.inspectionFormat)
			for _, insp := range all {
				logger.Info(config.FormatInspectionID(format, insp.ID(), insp.Name()),
					logging.FieldSeverity, insp.DefaultSeverity(),
					logging.FieldFamily, insp.FixFamilies(),
					logging.FieldDescription, insp.Description(),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.inspectionFormat, "inspection-format", "combined",
		"inspection identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func describeInspections(all []inspect.Inspection) []inspectionInfo {
	infos := make([]inspectionInfo, 0, len(all))
	for _, insp := range all {
		infos = append(infos, inspectionInfo{
			ID:          insp.ID(),
			Name:        insp.Name(),
			Description: insp.Description(),
			Severity:    string(insp.DefaultSeverity()),
			Enabled:     insp.DefaultEnabled(),
			Fixes:       insp.FixFamilies(),
		})
	}
	return infos
}
