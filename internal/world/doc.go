// Package world exposes the consumer API of the system: a Registry that
// opens one SQLite-backed world per name, and per-world fluent chains
//
//	w.Get("tool").Wrt("base").Ei(ctx, "camera")
//	w.Set("tool").Wrt("base").Ei("base").As(ctx, p)
//
// mirroring the WRT/EI vocabulary of the pose queries they perform.
package world
