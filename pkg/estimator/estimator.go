package estimator

import (
	"math"

	"github.com/JulienBalestra/taxestimator/pkg/amount"
	"github.com/JulienBalestra/taxestimator/pkg/bracket"
	"github.com/JulienBalestra/taxestimator/pkg/schedule"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidAmount is returned for negative, NaN or infinite inputs.
var ErrInvalidAmount = amount.ErrInvalidAmount

// Result is the immutable outcome of one estimation.
type Result struct {
	Year       int     `json:"year" yaml:"year"`
	Salary     float64 `json:"salary" yaml:"salary"`
	StockSales float64 `json:"stock_sales" yaml:"stock_sales"`

	FederalTaxableIncome    float64 `json:"federal_taxable_income" yaml:"federal_taxable_income"`
	CaliforniaTaxableIncome float64 `json:"ca_taxable_income" yaml:"ca_taxable_income"`
	MAGI                    float64 `json:"magi" yaml:"magi"`
	NIITBase                float64 `json:"niit_base" yaml:"niit_base"`

	FederalIncomeTax       float64 `json:"federal_income_tax" yaml:"federal_income_tax"`
	FederalCapitalGainsTax float64 `json:"federal_capital_gains_tax" yaml:"federal_capital_gains_tax"`
	NIIT                   float64 `json:"niit" yaml:"niit"`
	TotalFederalTax        float64 `json:"total_federal_tax" yaml:"total_federal_tax"`

	CaliforniaIncomeTax       float64 `json:"ca_income_tax" yaml:"ca_income_tax"`
	CaliforniaCapitalGainsTax float64 `json:"ca_capital_gains_tax" yaml:"ca_capital_gains_tax"`
	TotalCaliforniaTax        float64 `json:"total_ca_tax" yaml:"total_ca_tax"`

	TotalTax         float64 `json:"total_tax" yaml:"total_tax"`
	EffectiveTaxRate float64 `json:"effective_tax_rate" yaml:"effective_tax_rate"`
	PreTaxTotal      float64 `json:"pre_tax_total" yaml:"pre_tax_total"`
	TakeHomePay      float64 `json:"take_home_pay" yaml:"take_home_pay"`

	Breakdown *Breakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// Breakdown lists the per bracket contributions behind each progressive tax.
type Breakdown struct {
	FederalIncome       []bracket.Contribution `json:"federal_income" yaml:"federal_income"`
	FederalCapitalGains []bracket.Contribution `json:"federal_capital_gains" yaml:"federal_capital_gains"`
	CaliforniaIncome    []bracket.Contribution `json:"ca_income" yaml:"ca_income"`
}

// Estimator is read-only once built and safe for concurrent use. It owns a
// copy of the schedule it was built with.
type Estimator struct {
	schedule *schedule.Schedule
}

func NewEstimator(s *schedule.Schedule) (*Estimator, error) {
	if s == nil {
		return nil, errors.Wrap(schedule.ErrInvalidSchedule, "nil schedule")
	}
	s = s.Clone()
	err := s.Validate()
	if err != nil {
		return nil, err
	}
	return &Estimator{schedule: s}, nil
}

func checkAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalidAmount, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return errors.Wrapf(ErrInvalidAmount, "%s must not be negative, got %.2f", name, v)
	}
	return nil
}

func (e *Estimator) Estimate(salary, stockSales float64) (*Result, error) {
	return e.estimate(salary, stockSales, false)
}

// EstimateWithBreakdown also fills Result.Breakdown.
func (e *Estimator) EstimateWithBreakdown(salary, stockSales float64) (*Result, error) {
	return e.estimate(salary, stockSales, true)
}

func (e *Estimator) estimate(salary, stockSales float64, breakdown bool) (*Result, error) {
	err := checkAmount("salary", salary)
	if err != nil {
		return nil, err
	}
	err = checkAmount("stock sales", stockSales)
	if err != nil {
		return nil, err
	}

	gross := salary + stockSales
	if math.IsInf(gross, 1) {
		return nil, errors.Wrapf(ErrInvalidAmount, "salary %v and stock sales %v overflow", salary, stockSales)
	}

	federal, california := &e.schedule.Federal, &e.schedule.California
	r := &Result{
		Year:        e.schedule.Year,
		Salary:      salary,
		StockSales:  stockSales,
		PreTaxTotal: gross,
	}

	r.FederalTaxableIncome = math.Max(0, salary-federal.StandardDeduction)
	federalIncome := federal.OrdinaryBrackets.Contributions(0, r.FederalTaxableIncome)
	r.FederalIncomeTax = bracket.Sum(federalIncome)

	// gains stack on top of the ordinary taxable income
	federalGains := federal.CapitalGainsBrackets.Contributions(r.FederalTaxableIncome, stockSales)
	r.FederalCapitalGainsTax = bracket.Sum(federalGains)

	r.MAGI = gross
	excessMAGI := math.Max(0, r.MAGI-federal.NIIT.Threshold)
	r.NIITBase = math.Min(stockSales, excessMAGI)
	r.NIIT = r.NIITBase * federal.NIIT.Rate
	r.TotalFederalTax = r.FederalIncomeTax + r.FederalCapitalGainsTax + r.NIIT

	r.CaliforniaTaxableIncome = math.Max(0, gross-california.StandardDeduction)
	californiaIncome := california.OrdinaryBrackets.Contributions(0, r.CaliforniaTaxableIncome)
	r.CaliforniaIncomeTax = bracket.Sum(californiaIncome)
	r.CaliforniaCapitalGainsTax = 0
	r.TotalCaliforniaTax = r.CaliforniaIncomeTax + r.CaliforniaCapitalGainsTax

	r.TotalTax = r.TotalFederalTax + r.TotalCaliforniaTax
	if gross > 0 {
		r.EffectiveTaxRate = r.TotalTax / gross * 100
	}
	r.TakeHomePay = gross - r.TotalTax

	if breakdown {
		r.Breakdown = &Breakdown{
			FederalIncome:       federalIncome,
			FederalCapitalGains: federalGains,
			CaliforniaIncome:    californiaIncome,
		}
	}
	zap.L().Debug("estimated taxes",
		zap.Float64("salary", salary),
		zap.Float64("stockSales", stockSales),
		zap.Float64("federalTaxableIncome", r.FederalTaxableIncome),
		zap.Float64("caTaxableIncome", r.CaliforniaTaxableIncome),
		zap.Float64("totalTax", r.TotalTax),
	)
	return r, nil
}
