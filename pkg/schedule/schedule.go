package schedule

import (
	_ "embed"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/JulienBalestra/taxestimator/pkg/bracket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const (
	FilingStatusSingle = "single"
)

var ErrInvalidSchedule = errors.New("invalid tax schedule")

// TableError reports an invalid bracket table of a schedule. It matches both
// ErrInvalidSchedule and the underlying bracket.ErrInvalidTable.
type TableError struct {
	Name string
	Err  error
}

func (e *TableError) Error() string {
	return ErrInvalidSchedule.Error() + ": " + e.Name + " brackets: " + e.Err.Error()
}

func (e *TableError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

func (e *TableError) Unwrap() error {
	return e.Err
}

//go:embed 2025-single.yaml
var defaultScheduleYAML []byte

type NIIT struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

type Federal struct {
	StandardDeduction    float64       `yaml:"standard_deduction"`
	OrdinaryBrackets     bracket.Table `yaml:"ordinary_brackets"`
	CapitalGainsBrackets bracket.Table `yaml:"capital_gains_brackets"`
	NIIT                 NIIT          `yaml:"niit"`
}

// California taxes capital gains as ordinary income.
type California struct {
	StandardDeduction float64       `yaml:"standard_deduction"`
	OrdinaryBrackets  bracket.Table `yaml:"ordinary_brackets"`
}

// Schedule holds the tax-law constants of one year and filing status.
// It must not be mutated once loaded.
type Schedule struct {
	Year         int        `yaml:"year"`
	FilingStatus string     `yaml:"filing_status"`
	Federal      Federal    `yaml:"federal"`
	California   California `yaml:"california"`
}

// Default returns the embedded 2025 single filer schedule.
func Default() *Schedule {
	s, err := Parse(defaultScheduleYAML)
	if err != nil {
		panic(err)
	}
	return s
}

func Parse(b []byte) (*Schedule, error) {
	s := &Schedule{}
	err := yaml.UnmarshalStrict(b, s)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode yaml schedule")
	}
	err = s.Validate()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a schedule file, yaml or hcl depending on its extension.
func Load(path string) (*Schedule, error) {
	zctx := zap.L().With(zap.String("scheduleFile", path))
	var s *Schedule
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		var b []byte
		b, err = os.ReadFile(path)
		if err != nil {
			zctx.Error("failed to read schedule file", zap.Error(err))
			return nil, err
		}
		s, err = Parse(b)
	case ".hcl":
		s, err = parseHCLFile(path)
	default:
		return nil, errors.Errorf("unsupported schedule file extension %q: must be .yaml, .yml or .hcl", ext)
	}
	if err != nil {
		zctx.Error("failed to load schedule", zap.Error(err))
		return nil, errors.Wrapf(err, "cannot load schedule %s", path)
	}
	zctx.Debug("schedule loaded", zap.Int("year", s.Year), zap.String("filingStatus", s.FilingStatus))
	return s, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (s *Schedule) Validate() error {
	if s.FilingStatus != FilingStatusSingle {
		return errors.Wrapf(ErrInvalidSchedule, "unsupported filing status %q", s.FilingStatus)
	}
	for name, v := range map[string]float64{
		"federal standard deduction":    s.Federal.StandardDeduction,
		"california standard deduction": s.California.StandardDeduction,
		"niit threshold":                s.Federal.NIIT.Threshold,
	} {
		if !validAmount(v) {
			return errors.Wrapf(ErrInvalidSchedule, "%s: invalid amount %v", name, v)
		}
	}
	if !validAmount(s.Federal.NIIT.Rate) || s.Federal.NIIT.Rate > 1 {
		return errors.Wrapf(ErrInvalidSchedule, "niit rate %v out of [0, 1]", s.Federal.NIIT.Rate)
	}
	for name, table := range map[string]bracket.Table{
		"federal ordinary":      s.Federal.OrdinaryBrackets,
		"federal capital gains": s.Federal.CapitalGainsBrackets,
		"california ordinary":   s.California.OrdinaryBrackets,
	} {
		err := table.Validate()
		if err != nil {
			return &TableError{Name: name, Err: err}
		}
	}
	return nil
}

// Clone returns a deep copy: the bracket tables do not share their backing arrays.
func (s *Schedule) Clone() *Schedule {
	c := *s
	c.Federal.OrdinaryBrackets = s.Federal.OrdinaryBrackets.Clone()
	c.Federal.CapitalGainsBrackets = s.Federal.CapitalGainsBrackets.Clone()
	c.California.OrdinaryBrackets = s.California.OrdinaryBrackets.Clone()
	return &c
}

func (s *Schedule) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
