// Package viz is the consumer-facing read surface for plotting tools:
// it snapshots every frame's world-expressed pose and renders the tree
// as text or a table. It never mutates a world.
package viz
