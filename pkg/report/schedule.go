package report

import (
	"io"

	"github.com/JulienBalestra/taxestimator/pkg/bracket"
	"github.com/JulienBalestra/taxestimator/pkg/schedule"
	"github.com/pkg/errors"
)

func (t *textWriter) table(title string, table bracket.Table) {
	t.line("%s:", title)
	for _, b := range table {
		t.line("  %s", b)
	}
}

// WriteSchedule prints the loaded tax constants, as text or yaml.
func WriteSchedule(w io.Writer, format string, s *schedule.Schedule) error {
	switch format {
	case FormatYAML:
		b, err := s.Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatText:
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q, must be %s or %s", format, FormatText, FormatYAML)
	}
	t := &textWriter{w: w}
	t.line("Tax Year: %d, Filing Status: %s", s.Year, s.FilingStatus)
	t.line(separator)
	t.line("Federal Standard Deduction: %s", Dollars(s.Federal.StandardDeduction))
	t.table("Federal Income Brackets", s.Federal.OrdinaryBrackets)
	t.table("Federal Capital Gains Brackets", s.Federal.CapitalGainsBrackets)
	t.line("NIIT: %s above %s of MAGI", Percent(s.Federal.NIIT.Rate*100), Dollars(s.Federal.NIIT.Threshold))
	t.line(separator)
	t.line("California Standard Deduction: %s", Dollars(s.California.StandardDeduction))
	t.table("California Income Brackets", s.California.OrdinaryBrackets)
	return t.err
}
