// Package engine implements the two operations of the frame tree: pose
// resolution (Resolver) and frame placement (Mutator).
//
// Resolution follows monogram notation: X_WF is the pose of frame F with
// respect to world W, and a trailing basis marker names the axes the
// components are expressed in. Resolve(F, R, I) computes X_RF expressed
// in I by composing world poses up the parent chain, removing the
// reference placement, and rotating the result into I's basis.
//
// Both operations work against a single in-memory snapshot of the tree
// taken at call time, with explicit cycle detection on every parent walk.
package engine
