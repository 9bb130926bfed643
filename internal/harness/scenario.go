package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/numfmt"
	"github.com/roach88/graycode/internal/trace"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Width is the codec width. Defaults to gray.DefaultWidth when omitted.
	Width int `yaml:"width,omitempty"`

	// RunID is a fixed run ID for deterministic snapshots.
	// If empty, "run-default" is used.
	RunID string `yaml:"run_id,omitempty"`

	// Steps are executed in order, each as one conversion.
	Steps []Step `yaml:"steps"`

	// Properties names the property checks to run after the steps.
	Properties []string `yaml:"properties,omitempty"`
}

// Step is a single conversion with its expected outcome.
// Exactly one of Encode and Decode is set. At most one of Expect and
// ExpectError is set; with neither, the step only has to succeed.
type Step struct {
	Encode      *Literal `yaml:"encode,omitempty"`
	Decode      *Literal `yaml:"decode,omitempty"`
	Expect      *Literal `yaml:"expect,omitempty"`
	ExpectError string   `yaml:"expect_error,omitempty"`
}

// Op returns the step's direction and input.
func (s Step) Op() (trace.Op, Literal) {
	if s.Encode != nil {
		return trace.OpEncode, *s.Encode
	}
	return trace.OpDecode, *s.Decode
}

// Literal is an unsigned value as written in the scenario file.
type Literal struct {
	Value uint64
	Base  numfmt.Base
}

// UnmarshalYAML parses the raw scalar text, so 0b and 0o literals keep their
// base instead of going through YAML's own integer resolution.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number literal", node.Line)
	}
	v, base, err := numfmt.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	l.Value, l.Base = v, base
	return nil
}

// String renders the literal in the base it was written in.
func (l Literal) String() string {
	return numfmt.Format(l.Value, l.Base, 0)
}

// LoadScenario reads, parses and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML. Unknown fields are
// rejected so typos such as "expects:" fail loudly.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Width == 0 {
		scenario.Width = gray.DefaultWidth
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := gray.New[uint64](s.Width); err != nil {
		return fmt.Errorf("width: %w", err)
	}
	if len(s.Steps) == 0 && len(s.Properties) == 0 {
		return fmt.Errorf("at least one step or property is required")
	}

	for i, step := range s.Steps {
		switch {
		case step.Encode == nil && step.Decode == nil:
			return fmt.Errorf("steps[%d]: one of encode or decode is required", i)
		case step.Encode != nil && step.Decode != nil:
			return fmt.Errorf("steps[%d]: encode and decode are mutually exclusive", i)
		case step.Expect != nil && step.ExpectError != "":
			return fmt.Errorf("steps[%d]: expect and expect_error are mutually exclusive", i)
		}
		if step.ExpectError != "" && step.ExpectError != string(gray.ErrCodeOutOfRange) {
			return fmt.Errorf("steps[%d]: unknown expect_error %q", i, step.ExpectError)
		}
	}

	for i, name := range s.Properties {
		if !isKnownProperty(name) {
			return fmt.Errorf("properties[%d]: unknown property %q (known: %v)", i, name, AllProperties)
		}
	}
	return nil
}
