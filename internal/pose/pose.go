package pose

// Pose is a rigid transform: a 3x3 orthonormal rotation and a translation
// vector. The zero value is NOT a valid pose (its rotation is the zero
// matrix); use Identity or one of the constructors.
//
// Pose is a plain value type. All operations return new values and never
// mutate their receivers or arguments.
type Pose struct {
	// R is the rotation, row-major.
	R [3][3]float64
	// T is the translation.
	T [3]float64
}

// Identity returns the identity transform.
func Identity() Pose {
	return Pose{R: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a pure translation (identity rotation).
func Translation(x, y, z float64) Pose {
	p := Identity()
	p.T = [3]float64{x, y, z}
	return p
}

// Compose returns p∘q: rotation p.R·q.R, translation p.R·q.T + p.T.
// Applying the result is equivalent to applying q first, then p.
func (p Pose) Compose(q Pose) Pose {
	var out Pose
	out.R = matMul(p.R, q.R)
	v := matVec(p.R, q.T)
	for i := 0; i < 3; i++ {
		out.T[i] = v[i] + p.T[i]
	}
	return out
}

// Inverse returns the full rigid inverse: rotation Rᵀ, translation -Rᵀ·T.
func (p Pose) Inverse() Pose {
	var out Pose
	out.R = transpose(p.R)
	v := matVec(out.R, p.T)
	out.T = [3]float64{-v[0], -v[1], -v[2]}
	return out
}

// RotationOnly returns a copy of p with its translation zeroed.
func (p Pose) RotationOnly() Pose {
	p.T = [3]float64{}
	return p
}

// RotateBy re-expresses p's components in another basis: both the rotation
// and the translation are premultiplied by basis, and no translation term
// is added. This is the change-of-basis step used when switching the
// "expressed in" frame of a relative pose.
func (p Pose) RotateBy(basis [3][3]float64) Pose {
	var out Pose
	out.R = matMul(basis, p.R)
	out.T = matVec(basis, p.T)
	return out
}

// Equal reports exact component-wise equality. No tolerance is applied;
// callers that need one should use ApproxEqual.
func (p Pose) Equal(q Pose) bool {
	return p == q
}

// ApproxEqual reports component-wise equality within tol.
func (p Pose) ApproxEqual(q Pose, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if abs(p.R[i][j]-q.R[i][j]) > tol {
				return false
			}
		}
		if abs(p.T[i]-q.T[i]) > tol {
			return false
		}
	}
	return true
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func matVec(a [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			out[i] += a[i][k] * v[k]
		}
	}
	return out
}

func transpose(a [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
