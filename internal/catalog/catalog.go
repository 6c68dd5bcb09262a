package catalog

import (
	"fmt"
)

// Category classifies a technology. The set is closed.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBiological
	CategoryNanotechnology
	CategoryQuantum
	CategoryPhysics
)

var categoryNames = map[Category]string{
	CategoryBiological:     "biological",
	CategoryNanotechnology: "nanotechnology",
	CategoryQuantum:        "quantum",
	CategoryPhysics:        "physics",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for k, v := range categoryNames {
		if v == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(text))
}

// Severity is ordered: Low < Medium < High < Critical.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	for k, v := range severityNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(text))
}

// Impact describes which way a constant pushes the outcome. Display only.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

func (i Impact) Valid() bool {
	switch i {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
		return true
	}
	return false
}

type Technology struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Probability float64  `json:"probability" yaml:"probability"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
}

type DamageType struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	BaseProbability float64  `json:"base_probability" yaml:"base_probability"`
	Description     string   `json:"description" yaml:"description"`
	Severity        Severity `json:"severity" yaml:"severity"`
}

// Constant is a tunable numeric parameter with its valid range.
type Constant struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Value  float64 `json:"value" yaml:"value"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Unit   string  `json:"unit" yaml:"unit"`
	Impact Impact  `json:"impact" yaml:"impact"`
}

// InRange reports whether v lies inside the constant's declared range.
func (c Constant) InRange(v float64) bool {
	return v >= c.Min && v <= c.Max
}

// Catalog is the read-only table of everything a simulation can reference.
type Catalog struct {
	Technologies []Technology `json:"technologies" yaml:"technologies"`
	DamageTypes  []DamageType `json:"damage_types" yaml:"damage_types"`
	Constants    []Constant   `json:"constants" yaml:"constants"`
}

func (c *Catalog) Technology(id string) (Technology, bool) {
	for _, t := range c.Technologies {
		if t.ID == id {
			return t, true
		}
	}
	return Technology{}, false
}

func (c *Catalog) DamageType(id string) (DamageType, bool) {
	for _, d := range c.DamageTypes {
		if d.ID == id {
			return d, true
		}
	}
	return DamageType{}, false
}

func (c *Catalog) Constant(id string) (Constant, bool) {
	for _, k := range c.Constants {
		if k.ID == id {
			return k, true
		}
	}
	return Constant{}, false
}

// DefaultConstants returns a fresh id → default value map.
func (c *Catalog) DefaultConstants() map[string]float64 {
	out := make(map[string]float64, len(c.Constants))
	for _, k := range c.Constants {
		out[k.ID] = k.Value
	}
	return out
}

// Validate checks ids, probability ranges and constant bounds.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, t := range c.Technologies {
		if t.ID == "" {
			return fmt.Errorf("technology %q: empty id", t.Name)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate technology id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Probability < 0 || t.Probability > 1 {
			return fmt.Errorf("technology %q: probability %.4f outside [0,1]", t.ID, t.Probability)
		}
		if !t.Category.Valid() {
			return fmt.Errorf("technology %q: missing category", t.ID)
		}
	}

	seen = make(map[string]bool)
	for _, d := range c.DamageTypes {
		if d.ID == "" {
			return fmt.Errorf("damage type %q: empty id", d.Name)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate damage type id %q", d.ID)
		}
		seen[d.ID] = true
		if d.BaseProbability < 0 || d.BaseProbability > 1 {
			return fmt.Errorf("damage type %q: base probability %.4f outside [0,1]", d.ID, d.BaseProbability)
		}
		if !d.Severity.Valid() {
			return fmt.Errorf("damage type %q: missing severity", d.ID)
		}
	}

	seen = make(map[string]bool)
	for _, k := range c.Constants {
		if k.ID == "" {
			return fmt.Errorf("constant %q: empty id", k.Name)
		}
		if seen[k.ID] {
			return fmt.Errorf("duplicate constant id %q", k.ID)
		}
		seen[k.ID] = true
		if k.Min > k.Max {
			return fmt.Errorf("constant %q: min %.4f > max %.4f", k.ID, k.Min, k.Max)
		}
		if !k.InRange(k.Value) {
			return fmt.Errorf("constant %q: default %.4f outside [%.4f, %.4f]", k.ID, k.Value, k.Min, k.Max)
		}
		if k.Impact != "" && !k.Impact.Valid() {
			return fmt.Errorf("constant %q: unknown impact %q", k.ID, k.Impact)
		}
	}
	return nil
}
