package flags

import (
	"fmt"
	"strings"

	"github.com/JulienBalestra/taxestimator/pkg/report"
	"github.com/JulienBalestra/taxestimator/pkg/taxes"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	ScheduleFileFlag = "schedule-file"
	OutputFlag       = "output"
	LogLevelFlag     = "log-level"

	ScheduleFileEnv = "TAXES_SCHEDULE_FILE"
	LogLevelEnv     = "TAXES_LOG_LEVEL"
)

// AddPersistentFlags registers the flags shared by every command.
func AddPersistentFlags(fs *pflag.FlagSet, taxesConfig *taxes.Config) {
	fs.StringVarP(&taxesConfig.ScheduleFile, ScheduleFileFlag, "s", "", "tax schedule file (.yaml, .yml or .hcl), defaults to the embedded 2025 single filer schedule, envvar "+ScheduleFileEnv)
	fs.StringVar(&taxesConfig.ZapLevel, LogLevelFlag, taxesConfig.ZapLevel, fmt.Sprintf("log level - %s %s %s %s %s %s %s, envvar %s", zap.DebugLevel, zap.InfoLevel, zap.WarnLevel, zap.ErrorLevel, zap.DPanicLevel, zap.PanicLevel, zap.FatalLevel, LogLevelEnv))
	fs.StringSliceVar(&taxesConfig.ZapConfig.OutputPaths, "log-output", taxesConfig.ZapConfig.OutputPaths, "log output")
}

func AddFlags(fs *pflag.FlagSet, taxesConfig *taxes.Config) {
	fs.StringVarP(&taxesConfig.Output, OutputFlag, "o", taxesConfig.Output, "output format - "+strings.Join(report.Formats(), " "))
	fs.BoolVar(&taxesConfig.Breakdown, "breakdown", false, "report the per bracket breakdown")
}
