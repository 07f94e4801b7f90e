package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/PhilNad/with-respect-to/internal/frame"
)

// frameColumns is the column list shared by every frame query, in the
// order scanFrame expects.
const frameColumns = "name, parent, r00, r01, r02, r10, r11, r12, r20, r21, r22, t0, t1, t2"

// Exists reports whether a frame with the given name is stored.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM frames WHERE name = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query frame %q: %w", name, err)
	}
	return true, nil
}

// Get returns the stored frame with the given name.
// Fails with UNKNOWN_FRAME if absent.
func (s *Store) Get(ctx context.Context, name string) (frame.Frame, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+frameColumns+" FROM frames WHERE name = ?", name)
	f, err := scanFrame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return frame.Frame{}, frame.NewUnknownFrame(name)
	}
	if err != nil {
		return frame.Frame{}, fmt.Errorf("get frame %q: %w", name, err)
	}
	return f, nil
}

// Insert stores a new frame row.
// Fails with INVALID_NAME if the name violates the identifier rule,
// IMMUTABLE_ROOT if it targets the root frame, and DUPLICATE_NAME if a
// row with that name already exists.
func (s *Store) Insert(ctx context.Context, f frame.Frame) error {
	if err := frame.CheckName(f.Name); err != nil {
		return err
	}
	if f.IsRoot() {
		return frame.NewImmutableRoot()
	}
	if err := insertFrame(ctx, s.db, f); err != nil {
		return err
	}
	return nil
}

// Delete removes a frame row. No-op if the name is absent; fails with
// IMMUTABLE_ROOT if it targets the root frame.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == frame.Root {
		return frame.NewImmutableRoot()
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM frames WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete frame %q: %w", name, err)
	}
	return nil
}

// Replace atomically swaps the row for f.Name: any existing row is deleted
// and the new one inserted within a single transaction, so a failure can
// never lose the previous row. The parent may change between replacements.
// Fails with INVALID_NAME or IMMUTABLE_ROOT like Insert.
func (s *Store) Replace(ctx context.Context, f frame.Frame) error {
	if err := frame.CheckName(f.Name); err != nil {
		return err
	}
	if f.IsRoot() {
		return frame.NewImmutableRoot()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace frame %q: %w", f.Name, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM frames WHERE name = ?", f.Name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("replace frame %q: %w", f.Name, err)
	}
	if err := insertFrame(ctx, tx, f); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace frame %q: %w", f.Name, err)
	}
	return nil
}

// ListNames returns all frame names in lexicographic order.
// Returns an empty slice (never nil) for an empty table.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM frames ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan frame name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frame names: %w", err)
	}
	return names, nil
}

// All returns a snapshot of the whole tree keyed by frame name.
// The resolver builds its in-memory index from this, one query per
// resolution instead of one query per ancestor.
func (s *Store) All(ctx context.Context) (map[string]frame.Frame, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+frameColumns+" FROM frames ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("load frames: %w", err)
	}
	defer rows.Close()

	frames := make(map[string]frame.Frame)
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames[f.Name] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return frames, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertFrame(ctx context.Context, db execer, f frame.Frame) error {
	parent := sql.NullString{String: f.Parent, Valid: f.Parent != ""}
	_, err := db.ExecContext(ctx, `
		INSERT INTO frames (`+frameColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		f.Name, parent,
		f.Pose.R[0][0], f.Pose.R[0][1], f.Pose.R[0][2],
		f.Pose.R[1][0], f.Pose.R[1][1], f.Pose.R[1][2],
		f.Pose.R[2][0], f.Pose.R[2][1], f.Pose.R[2][2],
		f.Pose.T[0], f.Pose.T[1], f.Pose.T[2],
	)
	if isPrimaryKeyConflict(err) {
		return frame.NewDuplicateName(f.Name)
	}
	if err != nil {
		return fmt.Errorf("insert frame %q: %w", f.Name, err)
	}
	return nil
}

// isPrimaryKeyConflict reports whether err is a PRIMARY KEY constraint
// violation from the sqlite3 driver.
func isPrimaryKeyConflict(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFrame(row scanner) (frame.Frame, error) {
	var f frame.Frame
	var parent sql.NullString
	err := row.Scan(
		&f.Name, &parent,
		&f.Pose.R[0][0], &f.Pose.R[0][1], &f.Pose.R[0][2],
		&f.Pose.R[1][0], &f.Pose.R[1][1], &f.Pose.R[1][2],
		&f.Pose.R[2][0], &f.Pose.R[2][1], &f.Pose.R[2][2],
		&f.Pose.T[0], &f.Pose.T[1], &f.Pose.T[2],
	)
	if err != nil {
		return frame.Frame{}, err
	}
	if parent.Valid {
		f.Parent = parent.String
	}
	return f, nil
}
