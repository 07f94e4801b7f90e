package pose

import "fmt"

// Tolerance used when checking that a 4x4 input encodes a rigid transform.
const rigidTol = 1e-9

// RigidityError reports a 4x4 matrix that does not encode a rigid
// transform. It is returned by FromMatrix.
type RigidityError struct {
	Reason string
}

func (e *RigidityError) Error() string {
	return fmt.Sprintf("not a rigid transform: %s", e.Reason)
}

// FromMatrix decomposes a 4x4 homogeneous matrix into a Pose.
//
// The bottom row must be (0, 0, 0, 1) and the upper-left 3x3 block must be
// orthonormal with determinant +1, both within a small tolerance.
// Violations return a *RigidityError.
func FromMatrix(m [4][4]float64) (Pose, error) {
	for j, want := range [4]float64{0, 0, 0, 1} {
		if abs(m[3][j]-want) > rigidTol {
			return Pose{}, &RigidityError{Reason: fmt.Sprintf("bottom row is not (0,0,0,1): m[3][%d] = %v", j, m[3][j])}
		}
	}
	var p Pose
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.R[i][j] = m[i][j]
		}
		p.T[i] = m[i][3]
	}
	// RᵀR = I
	rtr := matMul(transpose(p.R), p.R)
	id := Identity().R
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if abs(rtr[i][j]-id[i][j]) > rigidTol {
				return Pose{}, &RigidityError{Reason: "rotation block is not orthonormal"}
			}
		}
	}
	if d := det3(p.R); abs(d-1) > rigidTol {
		return Pose{}, &RigidityError{Reason: fmt.Sprintf("rotation determinant is %v, want +1", d)}
	}
	return p, nil
}

// Matrix returns p as a 4x4 homogeneous matrix.
func (p Pose) Matrix() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = p.R[i][j]
		}
		m[i][3] = p.T[i]
	}
	m[3][3] = 1
	return m
}

func det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}
