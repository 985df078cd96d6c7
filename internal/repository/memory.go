package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
)

// MemoryBoardRepository keeps boards in a map guarded by a RWMutex.
// WithTx holds the write lock for the whole transaction and stages writes,
// applying them only when fn succeeds. Reads outside a transaction take the
// read lock and return copies.
type MemoryBoardRepository struct {
	mu      sync.RWMutex
	boards  map[string]*model.Board
	numbers map[int]string
}

// NewMemoryBoardRepository constructs an empty MemoryBoardRepository.
func NewMemoryBoardRepository() *MemoryBoardRepository {
	return &MemoryBoardRepository{
		boards:  make(map[string]*model.Board),
		numbers: make(map[int]string),
	}
}

type memTxKey struct{}

type memTx struct {
	staged map[string]*model.Board
	order  []string
}

func memTxFromContext(ctx context.Context) *memTx {
	tx, _ := ctx.Value(memTxKey{}).(*memTx)
	return tx
}

// WithTx runs fn with exclusive access to the registry.
func (r *MemoryBoardRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if memTxFromContext(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memTx{staged: make(map[string]*model.Board)}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		return err
	}
	for _, id := range tx.order {
		b := tx.staged[id]
		r.boards[id] = b
		r.numbers[b.BoardNumber] = id
	}
	return nil
}

// GetForUpdate returns a board inside the caller's transaction.
func (r *MemoryBoardRepository) GetForUpdate(ctx context.Context, id string) (*model.Board, error) {
	return r.GetByID(ctx, id)
}

// GetByID returns a copy of a single board or model.ErrNotFound.
func (r *MemoryBoardRepository) GetByID(ctx context.Context, id string) (*model.Board, error) {
	if tx := memTxFromContext(ctx); tx != nil {
		return r.lookup(tx, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(nil, id)
}

func (r *MemoryBoardRepository) lookup(tx *memTx, id string) (*model.Board, error) {
	if tx != nil {
		if b, ok := tx.staged[id]; ok {
			return b.Clone(), nil
		}
	}
	b, ok := r.boards[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return b.Clone(), nil
}

// List returns copies of every board ordered by board number.
func (r *MemoryBoardRepository) List(ctx context.Context) ([]model.Board, error) {
	tx := memTxFromContext(ctx)
	if tx == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}

	out := make([]model.Board, 0, len(r.boards))
	for id, b := range r.boards {
		if tx != nil {
			if staged, ok := tx.staged[id]; ok {
				b = staged
			}
		}
		out = append(out, *b.Clone())
	}
	if tx != nil {
		for _, id := range tx.order {
			if _, ok := r.boards[id]; !ok {
				out = append(out, *tx.staged[id].Clone())
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoardNumber < out[j].BoardNumber })
	return out, nil
}

// Count returns the number of registered boards.
func (r *MemoryBoardRepository) Count(ctx context.Context) (int, error) {
	boards, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(boards), nil
}

// Insert registers a new board.
func (r *MemoryBoardRepository) Insert(ctx context.Context, b *model.Board) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		tx := memTxFromContext(ctx)
		if _, err := r.lookup(tx, b.ID); err == nil {
			return &model.ValidationError{Field: "id", Reason: "already exists"}
		}
		if _, taken := r.numbers[b.BoardNumber]; taken {
			return duplicateNumber(b.BoardNumber)
		}
		for _, id := range tx.order {
			if tx.staged[id].BoardNumber == b.BoardNumber {
				return duplicateNumber(b.BoardNumber)
			}
		}
		tx.stage(b.Clone())
		return nil
	})
}

// Update replaces the stored copy of an existing board.
func (r *MemoryBoardRepository) Update(ctx context.Context, b *model.Board) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		tx := memTxFromContext(ctx)
		existing, err := r.lookup(tx, b.ID)
		if err != nil {
			return err
		}
		next := b.Clone()
		next.BoardNumber = existing.BoardNumber
		next.Location = existing.Location
		next.Size = existing.Size
		next.Dimensions = existing.Dimensions
		next.CreatedAt = existing.CreatedAt
		tx.stage(next)
		return nil
	})
}

func (tx *memTx) stage(b *model.Board) {
	if _, ok := tx.staged[b.ID]; !ok {
		tx.order = append(tx.order, b.ID)
	}
	tx.staged[b.ID] = b
}
