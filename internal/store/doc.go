// Package store provides SQLite-backed durable storage for one world's
// frame tree.
//
// One database file holds exactly one world: a flat frames table with
// string parent pointers, seeded with the root "world" row at creation.
// The layout pushes cross-process concurrency control entirely to the
// filesystem; within a process the connection pool is limited to a single
// connection, matching SQLite's one-writer model.
//
// Mutation never updates columns in place. A frame is replaced by
// deleting and reinserting its row, and Replace wraps that pair in one
// transaction so a failed insert cannot lose the previous row.
package store
