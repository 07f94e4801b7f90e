// Package scene loads, validates, applies, and exports declarative scene
// documents: YAML files listing frame placements, checked against an
// embedded CUE schema before any world is touched.
package scene
