package taxes

import (
	"bytes"
	"testing"

	"github.com/JulienBalestra/taxestimator/pkg/estimator"
	"github.com/JulienBalestra/taxestimator/pkg/report"
	"github.com/magiconair/properties/assert"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	conf := NewDefaultConfig()
	assert.Equal(t, conf.Output, report.FormatText)
	assert.Equal(t, conf.ZapConfig.OutputPaths, []string{"stderr"})
	require.NoError(t, SetupLogger(conf))
}

func TestSetupLoggerInvalidLevel(t *testing.T) {
	conf := NewDefaultConfig()
	conf.ZapLevel = "verbose"
	require.Error(t, SetupLogger(conf))
}

func TestNewTaxes(t *testing.T) {
	for name, tc := range map[string]struct {
		scheduleFile string
		output       string
		err          bool
	}{
		"default":          {"", report.FormatText, false},
		"yaml schedule":    {"../schedule/fixtures/flat.yaml", report.FormatJSON, false},
		"hcl schedule":     {"../schedule/fixtures/2025-single.hcl", report.FormatPrometheus, false},
		"invalid schedule": {"../schedule/fixtures/overlapping.yaml", report.FormatText, true},
		"missing schedule": {"../schedule/fixtures/nope.yaml", report.FormatText, true},
		"unknown output":   {"", "csv", true},
	} {
		t.Run(name, func(t *testing.T) {
			conf := NewDefaultConfig()
			conf.ScheduleFile = tc.scheduleFile
			conf.Output = tc.output
			_, err := NewTaxes(conf)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	conf := NewDefaultConfig()
	conf.Breakdown = true
	tx, err := NewTaxes(conf)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, tx.Run(buf, 150000, 100000))
	require.Contains(t, buf.String(), "NIIT: $1,900.00\n")
	require.Contains(t, buf.String(), "California Income Brackets:\n")

	buf.Reset()
	err = tx.Run(buf, -1, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, estimator.ErrInvalidAmount))
	assert.Equal(t, buf.Len(), 0)
}
