package bracket

import (
	"encoding/json"
	"math"
)

// bracketFile is the serialized form of a Bracket: a missing upper bound
// stands for +Inf, which neither JSON nor YAML can carry.
type bracketFile struct {
	Lower float64  `json:"lower" yaml:"lower"`
	Upper *float64 `json:"upper,omitempty" yaml:"upper,omitempty"`
	Rate  float64  `json:"rate" yaml:"rate"`
}

func (b Bracket) toFile() bracketFile {
	f := bracketFile{Lower: b.Lower, Rate: b.Rate}
	if !b.IsUnbounded() {
		upper := b.Upper
		f.Upper = &upper
	}
	return f
}

func (b *Bracket) fromFile(f bracketFile) {
	b.Lower, b.Rate, b.Upper = f.Lower, f.Rate, math.Inf(1)
	if f.Upper != nil {
		b.Upper = *f.Upper
	}
}

func (b Bracket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.toFile())
}

func (b *Bracket) UnmarshalJSON(data []byte) error {
	f := bracketFile{}
	err := json.Unmarshal(data, &f)
	if err != nil {
		return err
	}
	b.fromFile(f)
	return nil
}

func (b Bracket) MarshalYAML() (interface{}, error) {
	return b.toFile(), nil
}

func (b *Bracket) UnmarshalYAML(unmarshal func(interface{}) error) error {
	f := bracketFile{}
	err := unmarshal(&f)
	if err != nil {
		return err
	}
	b.fromFile(f)
	return nil
}

// New builds a bracket; a nil upper bound makes it unbounded.
func New(lower float64, upper *float64, rate float64) Bracket {
	b := Bracket{}
	b.fromFile(bracketFile{Lower: lower, Upper: upper, Rate: rate})
	return b
}
