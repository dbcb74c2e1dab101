package schedule

import (
	"github.com/JulienBalestra/taxestimator/pkg/bracket"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

type hclBracket struct {
	Lower float64  `hcl:"lower"`
	Upper *float64 `hcl:"upper,optional"`
	Rate  float64  `hcl:"rate"`
}

type hclNIIT struct {
	Threshold float64 `hcl:"threshold"`
	Rate      float64 `hcl:"rate"`
}

type hclFederal struct {
	StandardDeduction float64      `hcl:"standard_deduction"`
	Ordinary          []hclBracket `hcl:"ordinary_bracket,block"`
	CapitalGains      []hclBracket `hcl:"capital_gains_bracket,block"`
	NIIT              hclNIIT      `hcl:"niit,block"`
}

type hclCalifornia struct {
	StandardDeduction float64      `hcl:"standard_deduction"`
	Ordinary          []hclBracket `hcl:"ordinary_bracket,block"`
}

type hclScheduleFile struct {
	Year         int           `hcl:"year"`
	FilingStatus string        `hcl:"filing_status"`
	Federal      hclFederal    `hcl:"federal,block"`
	California   hclCalifornia `hcl:"california,block"`
}

func toTable(brackets []hclBracket) bracket.Table {
	table := make(bracket.Table, 0, len(brackets))
	for _, b := range brackets {
		table = append(table, bracket.New(b.Lower, b.Upper, b.Rate))
	}
	return table
}

func parseHCLFile(path string) (*Schedule, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse HCL file %s", path)
	}
	var f hclScheduleFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &f)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to decode HCL file %s", path)
	}
	s := &Schedule{
		Year:         f.Year,
		FilingStatus: f.FilingStatus,
		Federal: Federal{
			StandardDeduction:    f.Federal.StandardDeduction,
			OrdinaryBrackets:     toTable(f.Federal.Ordinary),
			CapitalGainsBrackets: toTable(f.Federal.CapitalGains),
			NIIT: NIIT{
				Threshold: f.Federal.NIIT.Threshold,
				Rate:      f.Federal.NIIT.Rate,
			},
		},
		California: California{
			StandardDeduction: f.California.StandardDeduction,
			OrdinaryBrackets:  toTable(f.California.Ordinary),
		},
	}
	err := s.Validate()
	if err != nil {
		return nil, err
	}
	return s, nil
}
