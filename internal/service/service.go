// Package service implements the board registry: the sponsorship state
// machine, the derived renewal-due projection, queries, and statistics.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/clock"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/google/uuid"
)

// BoardRepository is the storage contract the registry needs.
type BoardRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetForUpdate(ctx context.Context, id string) (*model.Board, error)
	GetByID(ctx context.Context, id string) (*model.Board, error)
	List(ctx context.Context) ([]model.Board, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, b *model.Board) error
	Update(ctx context.Context, b *model.Board) error
}

// DefaultRenewalWindow is how far ahead of contract expiry a sponsored board
// is flagged for renewal.
const DefaultRenewalWindow = 30 * 24 * time.Hour

// BoardService orchestrates board queries and sponsorship transitions.
type BoardService struct {
	boards        BoardRepository
	clock         clock.Clock
	renewalWindow time.Duration
	logger        *log.Logger
}

// Option configures a BoardService.
type Option func(*BoardService)

// WithRenewalWindow overrides DefaultRenewalWindow.
func WithRenewalWindow(d time.Duration) Option {
	return func(s *BoardService) {
		if d > 0 {
			s.renewalWindow = d
		}
	}
}

// WithLogger sets the logger used for transition and sweep messages.
func WithLogger(l *log.Logger) Option {
	return func(s *BoardService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewBoardService constructs a BoardService with its dependencies.
func NewBoardService(boards BoardRepository, clk clock.Clock, opts ...Option) *BoardService {
	s := &BoardService{
		boards:        boards,
		clock:         clk,
		renewalWindow: DefaultRenewalWindow,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenewalWindow returns the configured renewal window.
func (s *BoardService) RenewalWindow() time.Duration {
	return s.renewalWindow
}

// Seed registers the catalogue into an empty store, numbering boards from 1
// in catalogue order. It returns the number of boards created, which is zero
// when the store already holds boards.
func (s *BoardService) Seed(ctx context.Context, entries []model.CatalogueEntry) (int, error) {
	created := 0
	err := s.boards.WithTx(ctx, func(txCtx context.Context) error {
		n, err := s.boards.Count(txCtx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		now := s.clock.Now()
		for i, entry := range entries {
			b := &model.Board{
				ID:             uuid.New().String(),
				BoardNumber:    i + 1,
				Location:       entry.Location,
				Size:           entry.Size,
				Dimensions:     entry.Size.Dimensions(),
				Status:         model.StatusAvailable,
				PricePerSeason: entry.Size.BasePrice(),
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := b.Validate(); err != nil {
				return fmt.Errorf("catalogue entry %d: %w", i+1, err)
			}
			if err := s.boards.Insert(txCtx, b); err != nil {
				return err
			}
		}
		created = len(entries)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed catalogue: %w", err)
	}
	if created > 0 {
		s.logger.Printf("seeded %d boards", created)
	}
	return created, nil
}

// ─── Queries ──────────────────────────────────────────────────────────────────

// GetByID returns a single board with its status projected to now.
func (s *BoardService) GetByID(ctx context.Context, id string) (*model.Board, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &model.ValidationError{Field: "id", Reason: "is required"}
	}
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	s.project(b, s.clock.Now())
	return b, nil
}

// ListAll returns every board ordered by board number.
func (s *BoardService) ListAll(ctx context.Context) ([]model.Board, error) {
	return s.listWhere(ctx, func(*model.Board) bool { return true })
}

// ListByLocation returns the boards in one zone ordered by board number.
func (s *BoardService) ListByLocation(ctx context.Context, loc model.Location) ([]model.Board, error) {
	if !loc.Valid() {
		return nil, &model.ValidationError{Field: "location", Reason: "unknown location " + string(loc)}
	}
	return s.listWhere(ctx, func(b *model.Board) bool { return b.Location == loc })
}

// ListByStatus returns the boards whose projected status equals status.
func (s *BoardService) ListByStatus(ctx context.Context, status model.Status) ([]model.Board, error) {
	if !status.Valid() {
		return nil, &model.ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}
	return s.listWhere(ctx, func(b *model.Board) bool { return b.Status == status })
}

// ListAvailable returns the boards open for sponsorship.
func (s *BoardService) ListAvailable(ctx context.Context) ([]model.Board, error) {
	return s.ListByStatus(ctx, model.StatusAvailable)
}

// ListSponsored returns boards with an active sponsor, including those due
// for renewal.
func (s *BoardService) ListSponsored(ctx context.Context) ([]model.Board, error) {
	return s.listWhere(ctx, func(b *model.Board) bool {
		return b.Status == model.StatusSponsored || b.Status == model.StatusRenewalDue
	})
}

// ListRenewalsDue returns sponsored boards whose contract ends within the
// renewal window.
func (s *BoardService) ListRenewalsDue(ctx context.Context) ([]model.Board, error) {
	return s.ListByStatus(ctx, model.StatusRenewalDue)
}

// Stats computes occupancy and revenue over the whole catalogue.
func (s *BoardService) Stats(ctx context.Context) (model.Stats, error) {
	boards, err := s.ListAll(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return model.ComputeStats(boards), nil
}

func (s *BoardService) listWhere(ctx context.Context, keep func(*model.Board) bool) ([]model.Board, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	now := s.clock.Now()
	out := make([]model.Board, 0, len(boards))
	for i := range boards {
		b := &boards[i]
		s.project(b, now)
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// project replaces the stored sponsored/renewal-due status with the one the
// contract end date implies. The date is the source of truth.
func (s *BoardService) project(b *model.Board, now time.Time) {
	if b.Contract == nil {
		return
	}
	switch b.Status {
	case model.StatusSponsored, model.StatusRenewalDue:
		if b.Contract.DueForRenewal(now, s.renewalWindow) {
			b.Status = model.StatusRenewalDue
		} else {
			b.Status = model.StatusSponsored
		}
	}
}

// ─── Transitions ──────────────────────────────────────────────────────────────

// Reserve moves an available board to reserved for a sponsor, opening a
// contract with payment pending. A board that is not available is rejected
// with ErrBoardNotAvailable before the request itself is validated.
func (s *BoardService) Reserve(ctx context.Context, id string, req model.ReserveRequest) (*model.Board, error) {
	return s.mutate(ctx, "reserve", id, func(b *model.Board) error {
		if b.Status != model.StatusAvailable {
			return model.ErrBoardNotAvailable
		}
		sponsor, err := normalizeSponsor(req.Sponsor)
		if err != nil {
			return err
		}
		contract, err := s.newContract(req)
		if err != nil {
			return err
		}
		b.Status = model.StatusReserved
		b.Sponsor = &sponsor
		b.Contract = contract
		return nil
	})
}

// ConfirmPayment records payment for a reserved board and makes it sponsored.
func (s *BoardService) ConfirmPayment(ctx context.Context, id string, paidAmount int64) (*model.Board, error) {
	if paidAmount <= 0 {
		return nil, model.ErrInvalidAmount
	}
	return s.mutate(ctx, "confirm-payment", id, func(b *model.Board) error {
		if b.Status != model.StatusReserved {
			return model.ErrInvalidTransition
		}
		amount := paidAmount
		b.Status = model.StatusSponsored
		b.Contract.PaidAmount = &amount
		b.Contract.PaymentStatus = model.PaymentPaid
		return nil
	})
}

// CancelReservation releases a reserved board back to available.
func (s *BoardService) CancelReservation(ctx context.Context, id string) (*model.Board, error) {
	return s.mutate(ctx, "cancel-reservation", id, func(b *model.Board) error {
		if b.Status != model.StatusReserved {
			return model.ErrInvalidTransition
		}
		b.ClearSponsorship()
		return nil
	})
}

// FlagRenewal persists the renewal-due status of a sponsored board whose
// contract ends within the renewal window. It fails with
// ErrInvalidTransition for any board the date rule does not flag.
func (s *BoardService) FlagRenewal(ctx context.Context, id string) (*model.Board, error) {
	return s.mutate(ctx, "flag-renewal", id, func(b *model.Board) error {
		if b.Status != model.StatusRenewalDue {
			return model.ErrInvalidTransition
		}
		return nil
	})
}

// RenewContract extends the contract of a board that is due for renewal and
// returns it to sponsored. The sponsor is kept.
func (s *BoardService) RenewContract(ctx context.Context, id string, newEndDate time.Time) (*model.Board, error) {
	newEnd := model.Day(newEndDate)
	return s.mutate(ctx, "renew-contract", id, func(b *model.Board) error {
		if b.Status != model.StatusRenewalDue {
			return model.ErrInvalidTransition
		}
		if !newEnd.After(b.Contract.EndDate) {
			return model.ErrInvalidDate
		}
		b.Status = model.StatusSponsored
		b.Contract.EndDate = newEnd
		b.Contract.RenewalReminder = nil
		return nil
	})
}

// EndContract closes a running sponsorship without renewal.
func (s *BoardService) EndContract(ctx context.Context, id string) (*model.Board, error) {
	return s.mutate(ctx, "end-contract", id, func(b *model.Board) error {
		if b.Status != model.StatusSponsored && b.Status != model.StatusRenewalDue {
			return model.ErrInvalidTransition
		}
		b.ClearSponsorship()
		return nil
	})
}

// SetPrice overrides the per-season price of a single board.
func (s *BoardService) SetPrice(ctx context.Context, id string, price int64) (*model.Board, error) {
	if price <= 0 {
		return nil, &model.ValidationError{Field: "price_per_season", Reason: "must be positive"}
	}
	return s.mutate(ctx, "set-price", id, func(b *model.Board) error {
		b.PricePerSeason = price
		return nil
	})
}

// mutate loads a board under lock, projects its status, applies fn, checks
// every invariant and writes it back. Nothing is written when fn or the
// invariant check fails.
func (s *BoardService) mutate(ctx context.Context, op, id string, fn func(b *model.Board) error) (*model.Board, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &model.ValidationError{Field: "id", Reason: "is required"}
	}

	var result *model.Board
	err := s.boards.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.boards.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		s.project(b, now)
		if err := fn(b); err != nil {
			return err
		}
		b.UpdatedAt = now
		if err := b.Validate(); err != nil {
			return err
		}
		if err := s.boards.Update(txCtx, b); err != nil {
			return err
		}

		s.project(b, now)
		result = b
		return nil
	})
	if err != nil {
		// Surface domain errors directly so handlers can set the right status.
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Printf("board %d %s: status=%s", result.BoardNumber, op, result.Status)
	return result, nil
}

func (s *BoardService) newContract(req model.ReserveRequest) (*model.Contract, error) {
	start := model.Day(s.clock.Now())
	if req.StartDate != "" {
		d, err := model.ParseDate("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		start = d
	}
	end := start.AddDate(1, 0, 0)
	if req.EndDate != "" {
		d, err := model.ParseDate("end_date", req.EndDate)
		if err != nil {
			return nil, err
		}
		end = d
	}
	if !end.After(start) {
		return nil, model.ErrInvalidDate
	}

	c := &model.Contract{
		StartDate:     start,
		EndDate:       end,
		PaymentStatus: model.PaymentPending,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if req.RenewalReminder != "" {
		d, err := model.ParseDate("renewal_reminder", req.RenewalReminder)
		if err != nil {
			return nil, err
		}
		if !d.Before(end) {
			return nil, model.ErrInvalidDate
		}
		c.RenewalReminder = &d
	}
	return c, nil
}

func normalizeSponsor(in model.Sponsor) (model.Sponsor, error) {
	out := model.Sponsor{
		Name:        strings.TrimSpace(in.Name),
		ContactName: strings.TrimSpace(in.ContactName),
		Email:       strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Website:     strings.TrimSpace(in.Website),
		Logo:        strings.TrimSpace(in.Logo),
	}
	if out.Name == "" {
		return model.Sponsor{}, &model.ValidationError{Field: "sponsor.name", Reason: "is required"}
	}
	if out.Email != "" && !isValidEmail(out.Email) {
		return model.Sponsor{}, &model.ValidationError{Field: "sponsor.email", Reason: "is not a valid email address"}
	}
	return out, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrInvalidTransition) ||
		errors.Is(err, model.ErrInvalidAmount) ||
		errors.Is(err, model.ErrInvalidDate) ||
		errors.Is(err, model.ErrValidation)
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
