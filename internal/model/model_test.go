package model

import (
	"errors"
	"testing"
	"time"
)

func paid(v int64) *int64 { return &v }

func sponsoredBoard(n int, size Size, amount int64) Board {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return Board{
		ID:             "b",
		BoardNumber:    n,
		Location:       LocationMainStand,
		Size:           size,
		Status:         StatusSponsored,
		PricePerSeason: size.BasePrice(),
		Sponsor:        &Sponsor{Name: "Sponsor"},
		Contract: &Contract{
			StartDate:     start,
			EndDate:       start.AddDate(1, 0, 0),
			PaidAmount:    paid(amount),
			PaymentStatus: PaymentPaid,
		},
	}
}

func TestSizeCatalogue(t *testing.T) {
	tests := []struct {
		size  Size
		dims  string
		price int64
	}{
		{SizeLarge, "6m x 1m", 300},
		{SizeStandard, "4m x 1m", 200},
		{SizeSmall, "2m x 1m", 100},
	}
	for _, tt := range tests {
		if got := tt.size.Dimensions(); got != tt.dims {
			t.Errorf("%s dimensions = %q, want %q", tt.size, got, tt.dims)
		}
		if got := tt.size.BasePrice(); got != tt.price {
			t.Errorf("%s base price = %d, want %d", tt.size, got, tt.price)
		}
	}
	if Size("huge").Valid() {
		t.Error("unknown size should be invalid")
	}
}

func TestDefaultCatalogue(t *testing.T) {
	entries := DefaultCatalogue()
	if len(entries) != 20 {
		t.Fatalf("DefaultCatalogue has %d entries, want 20", len(entries))
	}
	for i, e := range entries {
		if !e.Location.Valid() || !e.Size.Valid() {
			t.Errorf("entry %d invalid: %+v", i, e)
		}
	}
	if entries[0].Location != LocationMainStand || entries[0].Size != SizeLarge {
		t.Errorf("first entry = %+v, want main-stand large", entries[0])
	}
}

func TestBoardValidate(t *testing.T) {
	ok := sponsoredBoard(1, SizeLarge, 300)
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid board returned error: %v", err)
	}

	available := Board{BoardNumber: 2, Location: LocationFarSide, Size: SizeSmall, Status: StatusAvailable, PricePerSeason: 100}
	if err := available.Validate(); err != nil {
		t.Fatalf("valid available board returned error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(b *Board)
		want   error
	}{
		{"available with sponsor", func(b *Board) { b.Status = StatusAvailable }, ErrValidation},
		{"sponsored without sponsor", func(b *Board) { b.Sponsor = nil }, ErrValidation},
		{"sponsor without contract", func(b *Board) { b.Contract = nil }, ErrValidation},
		{"blank sponsor name", func(b *Board) { b.Sponsor.Name = "  " }, ErrValidation},
		{"end before start", func(b *Board) { b.Contract.EndDate = b.Contract.StartDate }, ErrInvalidDate},
		{"zero price", func(b *Board) { b.PricePerSeason = 0 }, ErrValidation},
		{"negative paid amount", func(b *Board) { b.Contract.PaidAmount = paid(-1) }, ErrInvalidAmount},
		{"unknown status", func(b *Board) { b.Status = "sold" }, ErrValidation},
		{"unknown location", func(b *Board) { b.Location = "roof" }, ErrValidation},
		{"unknown payment status", func(b *Board) { b.Contract.PaymentStatus = "waived" }, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sponsoredBoard(1, SizeLarge, 300)
			tt.mutate(&b)
			if err := b.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBoardClone(t *testing.T) {
	orig := sponsoredBoard(1, SizeLarge, 300)
	cp := orig.Clone()
	cp.Sponsor.Name = "Other"
	*cp.Contract.PaidAmount = 1
	if orig.Sponsor.Name != "Sponsor" {
		t.Errorf("clone aliased sponsor")
	}
	if *orig.Contract.PaidAmount != 300 {
		t.Errorf("clone aliased paid amount")
	}
}

func TestErrBoardNotAvailableIsInvalidTransition(t *testing.T) {
	if !errors.Is(ErrBoardNotAvailable, ErrInvalidTransition) {
		t.Fatal("ErrBoardNotAvailable should match ErrInvalidTransition")
	}
	if errors.Is(ErrInvalidTransition, ErrBoardNotAvailable) {
		t.Fatal("ErrInvalidTransition should not match ErrBoardNotAvailable")
	}
}

func TestContractDueForRenewal(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	c := &Contract{EndDate: Day(now).AddDate(0, 0, 10)}
	if !c.DueForRenewal(now, window) {
		t.Error("contract ending in 10 days should be due")
	}
	c.EndDate = Day(now).AddDate(0, 0, 40)
	if c.DueForRenewal(now, window) {
		t.Error("contract ending in 40 days should not be due")
	}
	c.EndDate = Day(now).AddDate(0, 0, 30)
	if !c.DueForRenewal(now, window) {
		t.Error("contract ending exactly at the window edge should be due")
	}
	c.EndDate = Day(now).AddDate(0, 0, -3)
	if !c.DueForRenewal(now, window) {
		t.Error("lapsed contract should be due")
	}
}

func TestComputeStats(t *testing.T) {
	t.Run("empty catalogue", func(t *testing.T) {
		s := ComputeStats(nil)
		if s.Total != 0 || s.OccupancyRate != 0 {
			t.Fatalf("unexpected stats for empty catalogue: %+v", s)
		}
	})

	t.Run("three board scenario", func(t *testing.T) {
		a := Board{BoardNumber: 1, Location: LocationMainStand, Size: SizeLarge, Status: StatusAvailable, PricePerSeason: 300}
		b := sponsoredBoard(2, SizeStandard, 200)
		c := sponsoredBoard(3, SizeSmall, 0)
		c.Status = StatusReserved
		c.Contract.PaidAmount = nil
		c.Contract.PaymentStatus = PaymentPending

		s := ComputeStats([]Board{a, b, c})
		want := Stats{
			Total:            3,
			Sponsored:        1,
			Available:        1,
			Reserved:         1,
			RenewalDue:       0,
			TotalRevenue:     200,
			PotentialRevenue: 300,
			OccupancyRate:    33,
		}
		if s != want {
			t.Fatalf("ComputeStats = %+v, want %+v", s, want)
		}
	})

	t.Run("renewal due counts toward occupancy", func(t *testing.T) {
		b := sponsoredBoard(1, SizeLarge, 300)
		b.Status = StatusRenewalDue
		s := ComputeStats([]Board{b})
		if s.RenewalDue != 1 || s.OccupancyRate != 100 || s.TotalRevenue != 300 {
			t.Fatalf("unexpected stats: %+v", s)
		}
	})
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("end_date", "2026-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate = %v", got)
	}
	if _, err := ParseDate("end_date", "01/03/2026"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
