package scene

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
)

//go:embed schema.cue
var schemaCUE string

// Scene is a declarative list of frame placements, applied in order.
type Scene struct {
	Frames []Frame `yaml:"frames"`
}

// Frame is one placement: the frame sits at the given pose relative to
// Wrt, with components expressed in Ei (defaulting to Wrt).
//
// The pose is either a full 4x4 homogeneous Matrix or a Translation plus
// roll/pitch/yaw angles in degrees; the two forms are mutually exclusive.
// Omitted Translation and RPYDeg components default to zero.
type Frame struct {
	Name        string      `yaml:"name"`
	Wrt         string      `yaml:"wrt"`
	Ei          string      `yaml:"ei,omitempty"`
	Matrix      [][]float64 `yaml:"matrix,omitempty"`
	Translation []float64   `yaml:"translation,omitempty"`
	RPYDeg      []float64   `yaml:"rpy_deg,omitempty"`
}

// Load parses and validates a YAML scene document.
//
// The document is checked against the embedded CUE schema (shape,
// identifier patterns, matrix dimensions) before being decoded, so a
// malformed file is rejected with positioned schema errors rather than
// failing halfway through an apply.
func Load(data []byte) (*Scene, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := validateAgainstSchema(doc); err != nil {
		return nil, err
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	for i, f := range s.Frames {
		if err := checkPlacement(f); err != nil {
			return nil, fmt.Errorf("frame %d (%q): %w", i, f.Name, err)
		}
	}
	return &s, nil
}

// validateAgainstSchema unifies the decoded document with #Scene.
func validateAgainstSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scene schema: %w", err)
	}
	sceneDef := schema.LookupPath(cue.ParsePath("#Scene"))
	if err := sceneDef.Err(); err != nil {
		return fmt.Errorf("lookup scene schema: %w", err)
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode scene document: %w", err)
	}

	unified := sceneDef.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid scene document:\n%s", cueerrors.Details(err, nil))
	}
	return nil
}

// checkPlacement enforces the cross-field rules the schema leaves to us.
func checkPlacement(f Frame) error {
	if f.Matrix != nil && (f.Translation != nil || f.RPYDeg != nil) {
		return fmt.Errorf("matrix is exclusive with translation/rpy_deg")
	}
	return nil
}

// Pose converts a placement to a pose value. A matrix form that does not
// encode a rigid transform fails with INVALID_POSE.
func (f Frame) Pose() (pose.Pose, error) {
	if f.Matrix != nil {
		var m [4][4]float64
		if len(f.Matrix) != 4 {
			return pose.Pose{}, frame.NewInvalidPose(fmt.Errorf("matrix has %d rows, want 4", len(f.Matrix)))
		}
		for i := 0; i < 4; i++ {
			if len(f.Matrix[i]) != 4 {
				return pose.Pose{}, frame.NewInvalidPose(fmt.Errorf("matrix row %d has %d columns, want 4", i, len(f.Matrix[i])))
			}
			for j := 0; j < 4; j++ {
				m[i][j] = f.Matrix[i][j]
			}
		}
		p, err := pose.FromMatrix(m)
		if err != nil {
			return pose.Pose{}, frame.NewInvalidPose(err)
		}
		return p, nil
	}

	p := pose.Identity()
	if f.RPYDeg != nil {
		p = pose.RPY(f.RPYDeg[0], f.RPYDeg[1], f.RPYDeg[2])
	}
	if f.Translation != nil {
		p.T = [3]float64{f.Translation[0], f.Translation[1], f.Translation[2]}
	}
	return p, nil
}

// ExpressedIn returns the placement's basis, defaulting to Wrt.
func (f Frame) ExpressedIn() string {
	if f.Ei != "" {
		return f.Ei
	}
	return f.Wrt
}
