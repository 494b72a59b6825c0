package domain

import (
	"fmt"
	"regexp"
)

// Region is a partition of records identified by a label and matched by a pattern
// against a category's region field
type Region struct {
	Label   string `json:"label" mapstructure:"label"`
	Pattern string `json:"pattern" mapstructure:"pattern"`
}

// NewRegion creates a region after checking the pattern compiles
func NewRegion(label, pattern string) (Region, error) {
	r := Region{Label: label, Pattern: pattern}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// DefaultRegions returns the production region list in processing order.
// PT is handled under the ES label.
func DefaultRegions() []Region {
	return []Region{
		{Label: "ES", Pattern: "ES"},
		{Label: "ES", Pattern: "PT"},
		{Label: "UK", Pattern: "UK"},
		{Label: "DE", Pattern: "DE"},
	}
}

// Validate checks the region has a label and a compilable pattern
func (r Region) Validate() error {
	if r.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidRegion)
	}
	if r.Pattern == "" {
		return fmt.Errorf("%w: pattern is required for %s", ErrInvalidRegion, r.Label)
	}
	if _, err := regexp.Compile(r.Pattern); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRegion, r.Label, err)
	}
	return nil
}

// Matches reports whether the value matches the region pattern
func (r Region) Matches(value string) bool {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// Key returns a stable identifier for the region, used for locks and metric labels
func (r Region) Key() string {
	if r.Label == r.Pattern {
		return r.Label
	}
	return r.Label + ":" + r.Pattern
}

func (r Region) String() string {
	return fmt.Sprintf("%s(%s)", r.Label, r.Pattern)
}
