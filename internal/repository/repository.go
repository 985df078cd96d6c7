// Package repository implements board persistence for the registry.
// Three stores share one contract: PostgreSQL (pgx, no ORM), an embedded
// SQLite file, and an in-memory map for tests and single-process demos.
//
// Every store supports WithTx. Mutations run GetForUpdate then Update inside
// one WithTx call, and the store guarantees that no other WithTx on the same
// board interleaves between the two.
package repository

import (
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
)

const boardColumns = `id, board_number, location, size, status, price_per_season,
	sponsor_name, sponsor_contact_name, sponsor_email, sponsor_phone, sponsor_website, sponsor_logo,
	contract_start, contract_end, renewal_reminder, paid_amount, payment_status, contract_notes,
	created_at, updated_at`

// boardRow is the flat, nullable shape of a board as stored in SQL.
type boardRow struct {
	ID             string
	BoardNumber    int
	Location       string
	Size           string
	Status         string
	PricePerSeason int64

	SponsorName        *string
	SponsorContactName *string
	SponsorEmail       *string
	SponsorPhone       *string
	SponsorWebsite     *string
	SponsorLogo        *string

	ContractStart   *time.Time
	ContractEnd     *time.Time
	RenewalReminder *time.Time
	PaidAmount      *int64
	PaymentStatus   *string
	ContractNotes   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// dest returns scan targets in boardColumns order.
func (r *boardRow) dest() []any {
	return []any{
		&r.ID, &r.BoardNumber, &r.Location, &r.Size, &r.Status, &r.PricePerSeason,
		&r.SponsorName, &r.SponsorContactName, &r.SponsorEmail, &r.SponsorPhone, &r.SponsorWebsite, &r.SponsorLogo,
		&r.ContractStart, &r.ContractEnd, &r.RenewalReminder, &r.PaidAmount, &r.PaymentStatus, &r.ContractNotes,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// insertArgs returns values in boardColumns order.
func (r *boardRow) insertArgs() []any {
	return []any{
		r.ID, r.BoardNumber, r.Location, r.Size, r.Status, r.PricePerSeason,
		r.SponsorName, r.SponsorContactName, r.SponsorEmail, r.SponsorPhone, r.SponsorWebsite, r.SponsorLogo,
		r.ContractStart, r.ContractEnd, r.RenewalReminder, r.PaidAmount, r.PaymentStatus, r.ContractNotes,
		r.CreatedAt, r.UpdatedAt,
	}
}

// updateArgs returns the id followed by every mutable column, matching the
// placeholder order of the UPDATE statements.
func (r *boardRow) updateArgs() []any {
	return []any{
		r.ID, r.Status, r.PricePerSeason,
		r.SponsorName, r.SponsorContactName, r.SponsorEmail, r.SponsorPhone, r.SponsorWebsite, r.SponsorLogo,
		r.ContractStart, r.ContractEnd, r.RenewalReminder, r.PaidAmount, r.PaymentStatus, r.ContractNotes,
		r.UpdatedAt,
	}
}

func rowFromBoard(b *model.Board) boardRow {
	row := boardRow{
		ID:             b.ID,
		BoardNumber:    b.BoardNumber,
		Location:       string(b.Location),
		Size:           string(b.Size),
		Status:         string(b.Status),
		PricePerSeason: b.PricePerSeason,
		CreatedAt:      b.CreatedAt.UTC(),
		UpdatedAt:      b.UpdatedAt.UTC(),
	}
	if s := b.Sponsor; s != nil {
		name := s.Name
		row.SponsorName = &name
		row.SponsorContactName = nullable(s.ContactName)
		row.SponsorEmail = nullable(s.Email)
		row.SponsorPhone = nullable(s.Phone)
		row.SponsorWebsite = nullable(s.Website)
		row.SponsorLogo = nullable(s.Logo)
	}
	if c := b.Contract; c != nil {
		start, end := model.Day(c.StartDate), model.Day(c.EndDate)
		row.ContractStart = &start
		row.ContractEnd = &end
		if c.RenewalReminder != nil {
			reminder := model.Day(*c.RenewalReminder)
			row.RenewalReminder = &reminder
		}
		if c.PaidAmount != nil {
			amount := *c.PaidAmount
			row.PaidAmount = &amount
		}
		status := string(c.PaymentStatus)
		row.PaymentStatus = &status
		row.ContractNotes = nullable(c.Notes)
	}
	return row
}

func (r *boardRow) board() *model.Board {
	size := model.Size(r.Size)
	b := &model.Board{
		ID:             r.ID,
		BoardNumber:    r.BoardNumber,
		Location:       model.Location(r.Location),
		Size:           size,
		Dimensions:     size.Dimensions(),
		Status:         model.Status(r.Status),
		PricePerSeason: r.PricePerSeason,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
	if r.SponsorName != nil {
		b.Sponsor = &model.Sponsor{
			Name:        *r.SponsorName,
			ContactName: deref(r.SponsorContactName),
			Email:       deref(r.SponsorEmail),
			Phone:       deref(r.SponsorPhone),
			Website:     deref(r.SponsorWebsite),
			Logo:        deref(r.SponsorLogo),
		}
	}
	if r.ContractStart != nil && r.ContractEnd != nil {
		c := &model.Contract{
			StartDate:     model.Day(*r.ContractStart),
			EndDate:       model.Day(*r.ContractEnd),
			PaidAmount:    r.PaidAmount,
			PaymentStatus: model.PaymentStatus(deref(r.PaymentStatus)),
			Notes:         deref(r.ContractNotes),
		}
		if r.RenewalReminder != nil {
			reminder := model.Day(*r.RenewalReminder)
			c.RenewalReminder = &reminder
		}
		b.Contract = c
	}
	return b
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func duplicateNumber(n int) error {
	return &model.ValidationError{Field: "board_number", Reason: fmt.Sprintf("%d is already assigned", n)}
}
