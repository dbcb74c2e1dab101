package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/JulienBalestra/taxestimator/pkg/bracket"
	"github.com/JulienBalestra/taxestimator/pkg/estimator"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatPrometheus = "prometheus"
	FormatProtobuf   = "protobuf"

	separator = "--------------------"
)

var ErrUnknownFormat = errors.New("unknown output format")

func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatPrometheus, FormatProtobuf}
}

func CheckFormat(format string) error {
	for _, f := range Formats() {
		if f == format {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownFormat, "%q, must be one of %s", format, strings.Join(Formats(), ", "))
}

func Write(w io.Writer, format string, r *estimator.Result) error {
	switch format {
	case FormatText:
		return WriteText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		b, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatPrometheus:
		return WritePrometheus(w, r)
	case FormatProtobuf:
		return WriteProtobuf(w, r)
	}
	return CheckFormat(format)
}

// Dollars formats v like $1,234.56
func Dollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func Percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + "%"
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(format string, a ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", a...)
}

func (t *textWriter) contributions(title string, contributions []bracket.Contribution) {
	t.line("%s:", title)
	for _, c := range contributions {
		t.line("  %s: %s taxed %s", c.Bracket, Dollars(c.Amount), Dollars(c.Tax))
	}
}

func WriteText(w io.Writer, r *estimator.Result) error {
	t := &textWriter{w: w}
	t.line("Salary: %s", Dollars(r.Salary))
	t.line("Stock Sales: %s", Dollars(r.StockSales))
	t.line(separator)
	t.line("Federal Income Tax: %s", Dollars(r.FederalIncomeTax))
	t.line("Federal Capital Gains Tax: %s", Dollars(r.FederalCapitalGainsTax))
	t.line("NIIT: %s", Dollars(r.NIIT))
	t.line("Total Federal Tax: %s", Dollars(r.TotalFederalTax))
	t.line(separator)
	t.line("California Income Tax: %s", Dollars(r.CaliforniaIncomeTax))
	t.line("California Capital Gains Tax: %s", Dollars(r.CaliforniaCapitalGainsTax))
	t.line("Total California Tax: %s", Dollars(r.TotalCaliforniaTax))
	t.line(separator)
	t.line("Total Tax (Federal + CA): %s", Dollars(r.TotalTax))
	t.line("Effective Tax Rate: %s", Percent(r.EffectiveTaxRate))
	t.line("Pre-Tax Total: %s", Dollars(r.PreTaxTotal))
	t.line("Estimated Post-Tax Take Home Pay: %s", Dollars(r.TakeHomePay))
	if r.Breakdown == nil {
		return t.err
	}
	t.line(separator)
	t.line("Federal Taxable Income: %s", Dollars(r.FederalTaxableIncome))
	t.contributions("Federal Income Brackets", r.Breakdown.FederalIncome)
	t.contributions("Federal Capital Gains Brackets", r.Breakdown.FederalCapitalGains)
	t.line("NIIT Base: %s", Dollars(r.NIITBase))
	t.line("California Taxable Income: %s", Dollars(r.CaliforniaTaxableIncome))
	t.contributions("California Income Brackets", r.Breakdown.CaliforniaIncome)
	return t.err
}
