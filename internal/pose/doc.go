// Package pose implements the rigid-transform value type shared by every
// layer of the system: a 3x3 row-major rotation matrix paired with a
// translation vector.
//
// Poses are plain values. Composition, inversion, and reframing all return
// new values, and equality is exact component comparison so that
// deterministic fixtures can be asserted bit-for-bit. Callers that compute
// rotations from arbitrary angles should compare with ApproxEqual instead.
package pose
