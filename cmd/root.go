package root

import (
	"github.com/JulienBalestra/dry/pkg/version"
	"github.com/JulienBalestra/taxestimator/cmd/brackets"
	"github.com/JulienBalestra/taxestimator/cmd/env"
	"github.com/JulienBalestra/taxestimator/cmd/flags"
	"github.com/JulienBalestra/taxestimator/pkg/amount"
	"github.com/JulienBalestra/taxestimator/pkg/taxes"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const packageName = "github.com/JulienBalestra/taxestimator"

func init() {
	version.Package = packageName
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Short: "federal and California income tax estimator",
		Long:  "Estimate the 2025 federal and California income taxes of a single filer from a salary and long-term capital gains stock sales.",
		Use:   "taxestimator <salary> <stock_sales>",
		Example: `  taxestimator 150000 100000
  taxestimator --breakdown '$150,000' 100,000
  taxestimator -o prometheus 150000 0`,
		Args: cobra.ExactArgs(2),
	}
	taxesConfig := taxes.NewDefaultConfig()

	pfs := &pflag.FlagSet{}
	flags.AddPersistentFlags(pfs, taxesConfig)
	root.PersistentFlags().AddFlagSet(pfs)

	fs := &pflag.FlagSet{}
	flags.AddFlags(fs, taxesConfig)
	root.Flags().AddFlagSet(fs)

	root.AddCommand(version.NewCommand())
	root.AddCommand(brackets.NewCommand(taxesConfig))

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		err := env.DefaultFromEnv(pfs, flags.ScheduleFileFlag, flags.ScheduleFileEnv)
		if err != nil {
			return err
		}
		err = env.DefaultFromEnv(pfs, flags.LogLevelFlag, flags.LogLevelEnv)
		if err != nil {
			return err
		}
		return taxes.SetupLogger(taxesConfig)
	}

	root.RunE = func(cmd *cobra.Command, args []string) error {
		salary, err := amount.Parse(args[0])
		if err != nil {
			return errors.Wrap(err, "salary")
		}
		stockSales, err := amount.Parse(args[1])
		if err != nil {
			return errors.Wrap(err, "stock_sales")
		}
		t, err := taxes.NewTaxes(taxesConfig)
		if err != nil {
			return err
		}
		return t.Run(cmd.OutOrStdout(), salary, stockSales)
	}
	return root
}
