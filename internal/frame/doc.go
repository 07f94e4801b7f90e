// Package frame defines the shared leaf types of the frame tree: the
// persisted Frame record, the identifier rule for frame and world names,
// and the typed error taxonomy every layer reports failures through.
package frame
