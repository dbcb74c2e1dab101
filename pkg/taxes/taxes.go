package taxes

import (
	"io"

	"github.com/JulienBalestra/dry/pkg/zapconfig"
	"github.com/JulienBalestra/taxestimator/pkg/estimator"
	"github.com/JulienBalestra/taxestimator/pkg/report"
	"github.com/JulienBalestra/taxestimator/pkg/schedule"
	"go.uber.org/zap"
)

func NewDefaultConfig() *Config {
	zapConfig := zapconfig.NewZapConfig()
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	return &Config{
		Output:    report.FormatText,
		ZapConfig: zapConfig,
		ZapLevel:  "info",
	}
}

type Config struct {
	// empty means the embedded 2025 schedule
	ScheduleFile string
	Output       string
	Breakdown    bool

	ZapConfig *zap.Config
	ZapLevel  string
}

type Taxes struct {
	conf *Config

	Estimator *estimator.Estimator
}

func SetupLogger(conf *Config) error {
	err := conf.ZapConfig.Level.UnmarshalText([]byte(conf.ZapLevel))
	if err != nil {
		return err
	}
	logger, err := conf.ZapConfig.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)
	return nil
}

func LoadSchedule(conf *Config) (*schedule.Schedule, error) {
	if conf.ScheduleFile == "" {
		return schedule.Default(), nil
	}
	return schedule.Load(conf.ScheduleFile)
}

func NewTaxes(conf *Config) (*Taxes, error) {
	err := report.CheckFormat(conf.Output)
	if err != nil {
		return nil, err
	}
	s, err := LoadSchedule(conf)
	if err != nil {
		return nil, err
	}
	e, err := estimator.NewEstimator(s)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("estimator ready",
		zap.Int("year", s.Year),
		zap.String("filingStatus", s.FilingStatus),
		zap.String("scheduleFile", conf.ScheduleFile),
	)
	return &Taxes{
		conf:      conf,
		Estimator: e,
	}, nil
}

func (t *Taxes) Run(w io.Writer, salary, stockSales float64) error {
	estimate := t.Estimator.Estimate
	if t.conf.Breakdown {
		estimate = t.Estimator.EstimateWithBreakdown
	}
	r, err := estimate(salary, stockSales)
	if err != nil {
		zap.L().Error("failed to estimate taxes", zap.Error(err))
		return err
	}
	return report.Write(w, t.conf.Output, r)
}
