package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test for the pose-resolution pipeline:
// a sequence of frame placements followed by expected query results.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden
	// file when TreeGolden is set.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Setup contains the frame placements, applied in order.
	Setup []SetStep `yaml:"setup"`

	// Checks contains pose queries with their expected results.
	Checks []Check `yaml:"checks"`

	// TreeGolden, when true, compares the rendered frame tree against
	// the golden file testdata/golden/<name>.golden after the checks.
	TreeGolden bool `yaml:"tree_golden,omitempty"`
}

// SetStep is one placement: Set(Frame).Wrt(Wrt).Ei(Ei).As(pose), with the
// pose given as a translation plus roll/pitch/yaw degrees. Ei defaults
// to Wrt.
type SetStep struct {
	Frame       string     `yaml:"set"`
	Wrt         string     `yaml:"wrt"`
	Ei          string     `yaml:"ei,omitempty"`
	Translation [3]float64 `yaml:"translation,omitempty"`
	RPYDeg      [3]float64 `yaml:"rpy_deg,omitempty"`
}

// Check is one query with its expected pose: Get(Frame).Wrt(Wrt).Ei(Ei)
// must equal (Rotation, Translation) exactly. A zero-value Rotation is
// treated as identity so pure-translation expectations stay terse.
type Check struct {
	Frame       string        `yaml:"get"`
	Wrt         string        `yaml:"wrt"`
	Ei          string        `yaml:"ei,omitempty"`
	Rotation    [3][3]float64 `yaml:"rotation,omitempty"`
	Translation [3]float64    `yaml:"translation,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected, catching typos like "check:" for
// "checks:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	for i, step := range s.Setup {
		if step.Frame == "" {
			return fmt.Errorf("setup[%d]: missing required field: set", i)
		}
		if step.Wrt == "" {
			return fmt.Errorf("setup[%d]: missing required field: wrt", i)
		}
	}
	for i, check := range s.Checks {
		if check.Frame == "" {
			return fmt.Errorf("checks[%d]: missing required field: get", i)
		}
		if check.Wrt == "" {
			return fmt.Errorf("checks[%d]: missing required field: wrt", i)
		}
	}
	return nil
}

// expressedIn returns the step's basis, defaulting to its reference.
func (s SetStep) expressedIn() string {
	if s.Ei != "" {
		return s.Ei
	}
	return s.Wrt
}

func (c Check) expressedIn() string {
	if c.Ei != "" {
		return c.Ei
	}
	return c.Wrt
}
