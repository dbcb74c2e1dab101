package report

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/JulienBalestra/taxestimator/pkg/estimator"
	"github.com/JulienBalestra/taxestimator/pkg/schedule"
	"github.com/matttproud/golang_protobuf_extensions/pbutil"
	"github.com/pkg/errors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func estimate(t *testing.T, salary, stockSales float64, breakdown bool) *estimator.Result {
	e, err := estimator.NewEstimator(schedule.Default())
	require.NoError(t, err)
	if breakdown {
		r, err := e.EstimateWithBreakdown(salary, stockSales)
		require.NoError(t, err)
		return r
	}
	r, err := e.Estimate(salary, stockSales)
	require.NoError(t, err)
	return r
}

func TestDollars(t *testing.T) {
	for in, exp := range map[float64]string{
		0:          "$0.00",
		1:          "$1.00",
		5322.306:   "$5,322.31",
		1234567.89: "$1,234,567.89",
		-42.5:      "$-42.50",
	} {
		assert.Equal(t, exp, Dollars(in))
	}
	assert.Equal(t, "18.94%", Percent(18.936306))
	assert.Equal(t, "0.00%", Percent(0))
}

func TestWriteText(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatText, estimate(t, 100000, 0, false))
	require.NoError(t, err)
	assert.Equal(t, `Salary: $100,000.00
Stock Sales: $0.00
--------------------
Federal Income Tax: $13,614.00
Federal Capital Gains Tax: $0.00
NIIT: $0.00
Total Federal Tax: $13,614.00
--------------------
California Income Tax: $5,322.31
California Capital Gains Tax: $0.00
Total California Tax: $5,322.31
--------------------
Total Tax (Federal + CA): $18,936.31
Effective Tax Rate: 18.94%
Pre-Tax Total: $100,000.00
Estimated Post-Tax Take Home Pay: $81,063.69
`, buf.String())
}

func TestWriteTextNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteText(buf, estimate(t, 0, 0, false))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Effective Tax Rate: 0.00%\n")
	assert.Contains(t, buf.String(), "Estimated Post-Tax Take Home Pay: $0.00\n")
}

func TestWriteTextBreakdown(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteText(buf, estimate(t, 150000, 100000, true))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "NIIT: $1,900.00\n")
	assert.Contains(t, out, "Federal Taxable Income: $135,000.00\n")
	assert.Contains(t, out, "Federal Capital Gains Brackets:\n  48350-533400 15.00%: $100,000.00 taxed $15,000.00\n")
	assert.Contains(t, out, "NIIT Base: $50,000.00\n")
	assert.Contains(t, out, "  70606-360659 9.30%: $173,802.00 taxed $16,163.59\n")
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatJSON, estimate(t, 150000, 100000, false))
	require.NoError(t, err)

	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.InDelta(t, 1900, m["niit"], 1e-6)
	assert.InDelta(t, 42147, m["total_federal_tax"], 1e-6)
	assert.Equal(t, 0., m["ca_capital_gains_tax"])
	assert.NotContains(t, m, "breakdown")
}

func TestWriteJSONBreakdown(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatJSON, estimate(t, 1e6, 0, true))
	require.NoError(t, err)

	r := &estimator.Result{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), r))
	require.NotNil(t, r.Breakdown)
	top := r.Breakdown.FederalIncome[len(r.Breakdown.FederalIncome)-1]
	assert.True(t, top.Bracket.IsUnbounded())
	assert.Equal(t, 0.37, top.Bracket.Rate)
}

func TestWriteYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	exp := estimate(t, 150000, 100000, true)
	err := Write(buf, FormatYAML, exp)
	require.NoError(t, err)

	r := &estimator.Result{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), r))
	assert.Equal(t, exp, r)
}

func TestWritePrometheus(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatPrometheus, estimate(t, 150000, 100000, false))
	require.NoError(t, err)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(buf)
	require.NoError(t, err)
	require.Len(t, families, 5)
	for _, name := range []string{
		"taxes_input_dollars",
		"taxes_taxable_income_dollars",
		"taxes_tax_dollars",
		"taxes_effective_rate_percent",
		"taxes_take_home_pay_dollars",
	} {
		require.Contains(t, families, name)
		for _, m := range families[name].Metric {
			year := ""
			for _, l := range m.Label {
				if l.GetName() == labelYear {
					year = l.GetValue()
				}
			}
			assert.Equal(t, "2025", year, name)
		}
	}
	assert.Len(t, families["taxes_input_dollars"].Metric, 2)
	assert.Len(t, families["taxes_taxable_income_dollars"].Metric, 2)

	taxes := families["taxes_tax_dollars"]
	require.NotNil(t, taxes)
	assert.Equal(t, dto.MetricType_GAUGE, taxes.GetType())
	require.Len(t, taxes.Metric, 8)
	values := map[string]float64{}
	for _, m := range taxes.Metric {
		labels := map[string]string{}
		for _, l := range m.Label {
			labels[l.GetName()] = l.GetValue()
		}
		assert.Equal(t, "2025", labels[labelYear])
		values[labels[labelJurisdiction]+"/"+labels[labelKind]] = m.GetGauge().GetValue()
	}
	assert.InDelta(t, 1900, values["federal/niit"], 1e-6)
	assert.InDelta(t, 15000, values["federal/capital_gains"], 1e-6)
	assert.Equal(t, 0., values["california/capital_gains"])
	assert.InDelta(t, 61419.306, values["all/total"], 1e-6)

	rate := families["taxes_effective_rate_percent"]
	require.NotNil(t, rate)
	require.Len(t, rate.Metric, 1)
	assert.InDelta(t, 61419.306/250000*100, rate.Metric[0].GetGauge().GetValue(), 1e-6)
}

func TestWriteProtobuf(t *testing.T) {
	buf := &bytes.Buffer{}
	r := estimate(t, 100000, 0, false)
	err := Write(buf, FormatProtobuf, r)
	require.NoError(t, err)

	var families []*dto.MetricFamily
	for {
		mf := &dto.MetricFamily{}
		_, err = pbutil.ReadDelimited(buf, mf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		families = append(families, mf)
	}
	require.Len(t, families, 5)
	assert.Equal(t, "taxes_take_home_pay_dollars", families[4].GetName())
	assert.InDelta(t, r.TakeHomePay, families[4].Metric[0].GetGauge().GetValue(), 1e-9)
}

func TestUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", estimate(t, 1, 1, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	for _, f := range Formats() {
		assert.NoError(t, CheckFormat(f))
	}
}
