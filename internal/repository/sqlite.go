package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
)

// SQLiteBoardRepository stores boards in an embedded SQLite database opened
// with database.OpenSQLite. The connection pool is capped at one connection,
// so a running transaction excludes every other caller.
type SQLiteBoardRepository struct {
	db *sql.DB
}

// NewSQLiteBoardRepository constructs a SQLiteBoardRepository.
func NewSQLiteBoardRepository(db *sql.DB) *SQLiteBoardRepository {
	return &SQLiteBoardRepository{db: db}
}

type sqliteTxKey struct{}

type sqlQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction carried on the returned context.
func (r *SQLiteBoardRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(sqliteTxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, sqliteTxKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetForUpdate loads a board inside the caller's transaction. SQLite locks
// the whole database for the transaction, so no row lock is needed.
func (r *SQLiteBoardRepository) GetForUpdate(ctx context.Context, id string) (*model.Board, error) {
	return r.GetByID(ctx, id)
}

// GetByID returns a single board or model.ErrNotFound.
func (r *SQLiteBoardRepository) GetByID(ctx context.Context, id string) (*model.Board, error) {
	var row boardRow
	err := r.conn(ctx).QueryRowContext(ctx,
		"SELECT "+boardColumns+" FROM boards WHERE id = ?", id,
	).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("getting board: %w", err)
	}
	return row.board(), nil
}

// List returns every board ordered by board number.
func (r *SQLiteBoardRepository) List(ctx context.Context) ([]model.Board, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		"SELECT "+boardColumns+" FROM boards ORDER BY board_number",
	)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []model.Board
	for rows.Next() {
		var row boardRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scanning board: %w", err)
		}
		boards = append(boards, *row.board())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

// Count returns the number of registered boards.
func (r *SQLiteBoardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn(ctx).QueryRowContext(ctx, "SELECT COUNT(*) FROM boards").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting boards: %w", err)
	}
	return n, nil
}

// Insert registers a new board.
func (r *SQLiteBoardRepository) Insert(ctx context.Context, b *model.Board) error {
	row := rowFromBoard(b)
	_, err := r.conn(ctx).ExecContext(ctx,
		"INSERT INTO boards ("+boardColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		row.insertArgs()...,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return duplicateNumber(b.BoardNumber)
		}
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

// Update writes the mutable sponsorship fields of an existing board.
func (r *SQLiteBoardRepository) Update(ctx context.Context, b *model.Board) error {
	row := rowFromBoard(b)
	args := row.updateArgs()
	// SQLite placeholders are positional; move the id to the end.
	args = append(args[1:], args[0])

	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE boards SET
			status = ?, price_per_season = ?,
			sponsor_name = ?, sponsor_contact_name = ?, sponsor_email = ?,
			sponsor_phone = ?, sponsor_website = ?, sponsor_logo = ?,
			contract_start = ?, contract_end = ?, renewal_reminder = ?,
			paid_amount = ?, payment_status = ?, contract_notes = ?,
			updated_at = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return &model.ValidationError{Field: "board", Reason: "violates a storage constraint"}
		}
		return fmt.Errorf("updating board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SQLiteBoardRepository) conn(ctx context.Context) sqlQueryer {
	if tx, ok := ctx.Value(sqliteTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}
