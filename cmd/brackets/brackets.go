package brackets

import (
	"github.com/JulienBalestra/taxestimator/pkg/report"
	"github.com/JulienBalestra/taxestimator/pkg/taxes"
	"github.com/spf13/cobra"
)

func NewCommand(taxesConfig *taxes.Config) *cobra.Command {
	output := report.FormatText
	c := &cobra.Command{
		Use:   "brackets",
		Short: "Print the tax brackets and constants in use",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := taxes.LoadSchedule(taxesConfig)
			if err != nil {
				return err
			}
			return report.WriteSchedule(cmd.OutOrStdout(), output, s)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", output, "output format - "+report.FormatText+" "+report.FormatYAML)
	return c
}
