package report

import (
	"io"
	"strconv"

	"github.com/JulienBalestra/taxestimator/pkg/estimator"
	"github.com/matttproud/golang_protobuf_extensions/pbutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const (
	metricPrefix = "taxes_"

	labelYear         = "year"
	labelJurisdiction = "jurisdiction"
	labelKind         = "kind"

	jurisdictionFederal    = "federal"
	jurisdictionCalifornia = "california"
	jurisdictionAll        = "all"
)

type gauge struct {
	value  float64
	labels []string
}

func newGaugeFamily(name, help string, year int, gauges ...gauge) *dto.MetricFamily {
	mf := &dto.MetricFamily{
		Name: proto.String(metricPrefix + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, g := range gauges {
		m := &dto.Metric{
			Label: []*dto.LabelPair{
				{Name: proto.String(labelYear), Value: proto.String(strconv.Itoa(year))},
			},
			Gauge: &dto.Gauge{Value: proto.Float64(g.value)},
		}
		for i := 0; i+1 < len(g.labels); i += 2 {
			m.Label = append(m.Label, &dto.LabelPair{
				Name:  proto.String(g.labels[i]),
				Value: proto.String(g.labels[i+1]),
			})
		}
		mf.Metric = append(mf.Metric, m)
	}
	return mf
}

func taxGauge(value float64, jurisdiction, kind string) gauge {
	return gauge{value: value, labels: []string{labelJurisdiction, jurisdiction, labelKind, kind}}
}

// MetricFamilies exposes a result as prometheus gauges.
func MetricFamilies(r *estimator.Result) []*dto.MetricFamily {
	return []*dto.MetricFamily{
		newGaugeFamily("input_dollars", "Estimation inputs.", r.Year,
			gauge{r.Salary, []string{labelKind, "salary"}},
			gauge{r.StockSales, []string{labelKind, "stock_sales"}},
		),
		newGaugeFamily("taxable_income_dollars", "Taxable income after the standard deduction.", r.Year,
			gauge{r.FederalTaxableIncome, []string{labelJurisdiction, jurisdictionFederal}},
			gauge{r.CaliforniaTaxableIncome, []string{labelJurisdiction, jurisdictionCalifornia}},
		),
		newGaugeFamily("tax_dollars", "Estimated taxes.", r.Year,
			taxGauge(r.FederalIncomeTax, jurisdictionFederal, "income"),
			taxGauge(r.FederalCapitalGainsTax, jurisdictionFederal, "capital_gains"),
			taxGauge(r.NIIT, jurisdictionFederal, "niit"),
			taxGauge(r.TotalFederalTax, jurisdictionFederal, "total"),
			taxGauge(r.CaliforniaIncomeTax, jurisdictionCalifornia, "income"),
			taxGauge(r.CaliforniaCapitalGainsTax, jurisdictionCalifornia, "capital_gains"),
			taxGauge(r.TotalCaliforniaTax, jurisdictionCalifornia, "total"),
			taxGauge(r.TotalTax, jurisdictionAll, "total"),
		),
		newGaugeFamily("effective_rate_percent", "Total tax over pre-tax total.", r.Year,
			gauge{value: r.EffectiveTaxRate},
		),
		newGaugeFamily("take_home_pay_dollars", "Pre-tax total minus the total tax.", r.Year,
			gauge{value: r.TakeHomePay},
		),
	}
}

// WritePrometheus writes the text exposition format.
func WritePrometheus(w io.Writer, r *estimator.Result) error {
	for _, mf := range MetricFamilies(r) {
		_, err := expfmt.MetricFamilyToText(w, mf)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteProtobuf writes length delimited io.prometheus.client.MetricFamily messages.
func WriteProtobuf(w io.Writer, r *estimator.Result) error {
	for _, mf := range MetricFamilies(r) {
		_, err := pbutil.WriteDelimited(w, mf)
		if err != nil {
			return err
		}
	}
	return nil
}
