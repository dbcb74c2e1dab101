package amount

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Parse reads a non-negative dollar amount such as "150000", "1,234.56" or "$2,000".
func Parse(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, errors.Wrapf(ErrInvalidAmount, "empty amount %q", raw)
	}
	// decimal accepts exponents, a dollar amount does not
	if strings.ContainsAny(s, "eE") {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q is not a plain decimal number", raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q is not a number", raw)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q must not be negative", raw)
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q is out of range", raw)
	}
	return v, nil
}
