package bracket

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var ErrInvalidTable = errors.New("invalid bracket table")

// Bracket taxes the income in [Lower, Upper) at Rate.
type Bracket struct {
	Lower float64
	Upper float64
	Rate  float64
}

func (b Bracket) IsUnbounded() bool {
	return math.IsInf(b.Upper, 1)
}

func (b Bracket) String() string {
	if b.IsUnbounded() {
		return fmt.Sprintf("%.0f+ %.2f%%", b.Lower, b.Rate*100)
	}
	return fmt.Sprintf("%.0f-%.0f %.2f%%", b.Lower, b.Upper, b.Rate*100)
}

// Contribution is the share of a stacked amount falling into one bracket.
type Contribution struct {
	Bracket Bracket `json:"bracket" yaml:"bracket"`
	Amount  float64 `json:"amount" yaml:"amount"`
	Tax     float64 `json:"tax" yaml:"tax"`
}

// Table is a progressive tax schedule, ordered by ascending Lower bound.
type Table []Bracket

func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	return append(make(Table, 0, len(t)), t...)
}

func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.Wrap(ErrInvalidTable, "empty table")
	}
	if t[0].Lower != 0 {
		return errors.Wrapf(ErrInvalidTable, "first bracket starts at %.2f, not 0", t[0].Lower)
	}
	last := len(t) - 1
	for i, b := range t {
		if math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0) || math.IsNaN(b.Upper) {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: non finite bounds %s", i, b)
		}
		if math.IsNaN(b.Rate) || b.Rate < 0 || b.Rate > 1 {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: rate %v out of [0, 1]", i, b.Rate)
		}
		if b.Upper <= b.Lower {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: upper %.2f <= lower %.2f", i, b.Upper, b.Lower)
		}
		if i == last {
			if !b.IsUnbounded() {
				return errors.Wrapf(ErrInvalidTable, "last bracket %s must be unbounded", b)
			}
			continue
		}
		if b.IsUnbounded() {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: only the last bracket can be unbounded", i)
		}
		next := t[i+1]
		if next.Lower < b.Upper {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: %s overlaps %s", i+1, next, b)
		}
		if next.Lower > b.Upper {
			return errors.Wrapf(ErrInvalidTable, "bracket %d: gap between %.2f and %.2f", i+1, b.Upper, next.Lower)
		}
	}
	return nil
}

// Contributions walks the table with stacked laid on top of base: only the
// [base, base+stacked) slice of the income axis is taxed.
func (t Table) Contributions(base, stacked float64) []Contribution {
	top := base + stacked
	var contributions []Contribution
	for _, b := range t {
		if top <= b.Lower {
			break
		}
		amount := math.Min(top, b.Upper) - math.Max(base, b.Lower)
		if amount <= 0 {
			continue
		}
		contributions = append(contributions, Contribution{
			Bracket: b,
			Amount:  amount,
			Tax:     amount * b.Rate,
		})
	}
	return contributions
}

func Sum(contributions []Contribution) float64 {
	tax := 0.
	for _, c := range contributions {
		tax += c.Tax
	}
	return tax
}

func (t Table) StackedTax(base, stacked float64) float64 {
	return Sum(t.Contributions(base, stacked))
}

func (t Table) Tax(taxable float64) float64 {
	return t.StackedTax(0, taxable)
}
