package pose

import "math"

// RotX returns a rotation of deg degrees about the X axis.
func RotX(deg float64) Pose {
	s, c := sincosDeg(deg)
	return Pose{R: [3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}}
}

// RotY returns a rotation of deg degrees about the Y axis.
func RotY(deg float64) Pose {
	s, c := sincosDeg(deg)
	return Pose{R: [3][3]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}}
}

// RotZ returns a rotation of deg degrees about the Z axis.
func RotZ(deg float64) Pose {
	s, c := sincosDeg(deg)
	return Pose{R: [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

// RPY returns the rotation RotZ(yaw)·RotY(pitch)·RotX(roll), the usual
// roll/pitch/yaw convention, with angles in degrees.
func RPY(roll, pitch, yaw float64) Pose {
	return RotZ(yaw).Compose(RotY(pitch)).Compose(RotX(roll))
}

// ToRPY extracts roll/pitch/yaw angles in degrees from p's rotation,
// inverting RPY. At pitch = ±90° (gimbal lock) roll is reported as zero.
func (p Pose) ToRPY() (roll, pitch, yaw float64) {
	sy := -p.R[2][0]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	pitch = math.Asin(sy)
	if abs(abs(sy)-1) < 1e-12 {
		// Gimbal lock: only roll±yaw is observable, attribute it to yaw.
		roll = 0
		yaw = math.Atan2(-p.R[0][1], p.R[1][1])
	} else {
		roll = math.Atan2(p.R[2][1], p.R[2][2])
		yaw = math.Atan2(p.R[1][0], p.R[0][0])
	}
	const toDeg = 180 / math.Pi
	return roll * toDeg, pitch * toDeg, yaw * toDeg
}

// sincosDeg returns sin and cos of deg degrees, snapping values within
// 1e-15 of an integer to that integer so that axis-aligned rotations
// (90, 180, 270) come out exact and exact pose equality is meaningful
// for the common fixtures.
func sincosDeg(deg float64) (s, c float64) {
	s, c = math.Sincos(deg * math.Pi / 180)
	return snap(s), snap(c)
}

func snap(x float64) float64 {
	r := math.Round(x)
	if abs(x-r) < 1e-15 {
		return r
	}
	return x
}
