package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
)

// FlagRenewals persists the renewal-due status of every sponsored board the
// date rule flags and returns how many boards were updated. Boards changed by
// a concurrent transition between the scan and the write are skipped.
func (s *BoardService) FlagRenewals(ctx context.Context) (int, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list boards: %w", err)
	}

	now := s.clock.Now()
	flagged := 0
	for _, b := range boards {
		if b.Status != model.StatusSponsored || b.Contract == nil {
			continue
		}
		if !b.Contract.DueForRenewal(now, s.renewalWindow) {
			continue
		}
		if _, err := s.FlagRenewal(ctx, b.ID); err != nil {
			if errors.Is(err, model.ErrInvalidTransition) || errors.Is(err, model.ErrNotFound) {
				continue
			}
			return flagged, err
		}
		flagged++
	}
	return flagged, nil
}

// RunRenewalSweeper calls FlagRenewals once immediately and then every
// interval until ctx is cancelled.
func (s *BoardService) RunRenewalSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *BoardService) sweep(ctx context.Context) {
	n, err := s.FlagRenewals(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Printf("renewal sweep failed: %v", err)
		}
		return
	}
	if n > 0 {
		s.logger.Printf("renewal sweep flagged %d boards", n)
	}
}
