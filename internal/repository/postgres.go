package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BoardRepository handles board persistence in PostgreSQL.
type BoardRepository struct {
	db *pgxpool.Pool
}

// NewBoardRepository constructs a BoardRepository.
func NewBoardRepository(db *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{db: db}
}

type pgTxKey struct{}

// WithTx runs fn inside a transaction carried on the returned context.
// Nested calls reuse the outer transaction.
func (r *BoardRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if pgTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, pgTxKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetForUpdate loads a board and takes a row-level exclusive lock on it.
//
// Two staff members reserving the same board at the same moment would both
// read status=available and both write a sponsor. SELECT … FOR UPDATE makes
// the second transaction wait until the first commits, after which it reads
// the new status and fails with ErrBoardNotAvailable.
func (r *BoardRepository) GetForUpdate(ctx context.Context, id string) (*model.Board, error) {
	return r.get(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1 FOR UPDATE`, id)
}

// GetByID returns a single board or model.ErrNotFound.
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*model.Board, error) {
	return r.get(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)
}

func (r *BoardRepository) get(ctx context.Context, query, id string) (*model.Board, error) {
	var row boardRow
	err := r.queryRow(ctx, query, id).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return row.board(), nil
}

// List returns every board ordered by board number.
func (r *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	rows, err := r.query(ctx, `SELECT `+boardColumns+` FROM boards ORDER BY board_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var boards []model.Board
	for rows.Next() {
		var row boardRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, *row.board())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}
	return boards, nil
}

// Count returns the number of registered boards.
func (r *BoardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM boards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count boards: %w", err)
	}
	return n, nil
}

// Insert registers a new board.
func (r *BoardRepository) Insert(ctx context.Context, b *model.Board) error {
	row := rowFromBoard(b)
	_, err := r.exec(ctx,
		`INSERT INTO boards (`+boardColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		row.insertArgs()...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateNumber(b.BoardNumber)
		}
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

// Update writes the mutable sponsorship fields of an existing board.
func (r *BoardRepository) Update(ctx context.Context, b *model.Board) error {
	row := rowFromBoard(b)
	tag, err := r.exec(ctx,
		`UPDATE boards SET
			status = $2, price_per_season = $3,
			sponsor_name = $4, sponsor_contact_name = $5, sponsor_email = $6,
			sponsor_phone = $7, sponsor_website = $8, sponsor_logo = $9,
			contract_start = $10, contract_end = $11, renewal_reminder = $12,
			paid_amount = $13, payment_status = $14, contract_notes = $15,
			updated_at = $16
		 WHERE id = $1`,
		row.updateArgs()...,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return model.ErrNotFound
		}
		if isCheckViolation(err) {
			return &model.ValidationError{Field: "board", Reason: "violates a storage constraint"}
		}
		return fmt.Errorf("update board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func pgTxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(pgTxKey{}).(pgx.Tx)
	return tx
}

func (r *BoardRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := pgTxFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *BoardRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := pgTxFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.db.Query(ctx, sql, args...)
}

func (r *BoardRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := pgTxFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.db.QueryRow(ctx, sql, args...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
