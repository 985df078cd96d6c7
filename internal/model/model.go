// Package model defines the core domain types for the advertising-board registry.
package model

import (
	"strings"
	"time"
)

// Location is the physical zone of the ground a board is mounted in.
type Location string

const (
	LocationMainStand Location = "main-stand"
	LocationFarSide   Location = "far-side"
	LocationHomeEnd   Location = "home-end"
	LocationAwayEnd   Location = "away-end"
	LocationClubhouse Location = "clubhouse"
)

// Locations lists every zone in display order.
var Locations = []Location{
	LocationMainStand,
	LocationFarSide,
	LocationHomeEnd,
	LocationAwayEnd,
	LocationClubhouse,
}

// Valid reports whether l is one of the known zones.
func (l Location) Valid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Size is the board format. Each size has a fixed dimension and base price.
type Size string

const (
	SizeLarge    Size = "large"
	SizeStandard Size = "standard"
	SizeSmall    Size = "small"
)

type sizeSpec struct {
	dimensions string
	basePrice  int64
}

var sizeSpecs = map[Size]sizeSpec{
	SizeLarge:    {dimensions: "6m x 1m", basePrice: 300},
	SizeStandard: {dimensions: "4m x 1m", basePrice: 200},
	SizeSmall:    {dimensions: "2m x 1m", basePrice: 100},
}

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	_, ok := sizeSpecs[s]
	return ok
}

// Dimensions returns the fixed physical dimensions for the size.
func (s Size) Dimensions() string {
	return sizeSpecs[s].dimensions
}

// BasePrice returns the per-season list price for the size.
func (s Size) BasePrice() int64 {
	return sizeSpecs[s].basePrice
}

// Status is the sponsorship state of a board.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusSponsored  Status = "sponsored"
	StatusReserved   Status = "reserved"
	StatusRenewalDue Status = "renewal-due"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSponsored, StatusReserved, StatusRenewalDue:
		return true
	}
	return false
}

// PaymentStatus tracks settlement of a contract.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return true
	}
	return false
}

// Sponsor is the business attached to a non-available board.
type Sponsor struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// Contract is the time-bounded agreement and payment record for a sponsor.
type Contract struct {
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	RenewalReminder *time.Time    `json:"renewal_reminder,omitempty"`
	PaidAmount      *int64        `json:"paid_amount,omitempty"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Notes           string        `json:"notes,omitempty"`
}

// DueForRenewal reports whether the contract ends within window of now.
// Contracts that have already lapsed are also due.
func (c *Contract) DueForRenewal(now time.Time, window time.Duration) bool {
	return !c.EndDate.After(Day(now).Add(window))
}

// Board is a physical pitch-side advertising panel.
type Board struct {
	ID             string    `json:"id"`
	BoardNumber    int       `json:"board_number"`
	Location       Location  `json:"location"`
	Size           Size      `json:"size"`
	Dimensions     string    `json:"dimensions"`
	Status         Status    `json:"status"`
	PricePerSeason int64     `json:"price_per_season"`
	Sponsor        *Sponsor  `json:"sponsor,omitempty"`
	Contract       *Contract `json:"contract,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers can never alias stored state.
func (b *Board) Clone() *Board {
	out := *b
	if b.Sponsor != nil {
		s := *b.Sponsor
		out.Sponsor = &s
	}
	if b.Contract != nil {
		c := *b.Contract
		if b.Contract.RenewalReminder != nil {
			r := *b.Contract.RenewalReminder
			c.RenewalReminder = &r
		}
		if b.Contract.PaidAmount != nil {
			p := *b.Contract.PaidAmount
			c.PaidAmount = &p
		}
		out.Contract = &c
	}
	return &out
}

// ClearSponsorship returns the board to the available state.
func (b *Board) ClearSponsorship() {
	b.Status = StatusAvailable
	b.Sponsor = nil
	b.Contract = nil
}

// Validate checks every board invariant. It is run before each write.
func (b *Board) Validate() error {
	if b.BoardNumber <= 0 {
		return &ValidationError{Field: "board_number", Reason: "must be positive"}
	}
	if !b.Location.Valid() {
		return &ValidationError{Field: "location", Reason: "unknown location " + string(b.Location)}
	}
	if !b.Size.Valid() {
		return &ValidationError{Field: "size", Reason: "unknown size " + string(b.Size)}
	}
	if !b.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status " + string(b.Status)}
	}
	if b.PricePerSeason <= 0 {
		return &ValidationError{Field: "price_per_season", Reason: "must be positive"}
	}

	if b.Status == StatusAvailable {
		if b.Sponsor != nil || b.Contract != nil {
			return &ValidationError{Field: "sponsor", Reason: "available board cannot carry a sponsor or contract"}
		}
		return nil
	}

	if b.Sponsor == nil {
		return &ValidationError{Field: "sponsor", Reason: "required when status is " + string(b.Status)}
	}
	if strings.TrimSpace(b.Sponsor.Name) == "" {
		return &ValidationError{Field: "sponsor.name", Reason: "is required"}
	}
	if b.Contract == nil {
		return &ValidationError{Field: "contract", Reason: "required when a sponsor is present"}
	}
	if !b.Contract.EndDate.After(b.Contract.StartDate) {
		return ErrInvalidDate
	}
	if !b.Contract.PaymentStatus.Valid() {
		return &ValidationError{Field: "contract.payment_status", Reason: "unknown payment status"}
	}
	if b.Contract.PaidAmount != nil && *b.Contract.PaidAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReserveRequest is the payload for reserving an available board.
// Dates are YYYY-MM-DD; empty start defaults to today and empty end to one
// year after the start.
type ReserveRequest struct {
	Sponsor         Sponsor `json:"sponsor"`
	StartDate       string  `json:"start_date,omitempty"`
	EndDate         string  `json:"end_date,omitempty"`
	RenewalReminder string  `json:"renewal_reminder,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ConfirmPaymentRequest is the payload for confirming a reservation.
type ConfirmPaymentRequest struct {
	PaidAmount int64 `json:"paid_amount"`
}

// RenewRequest is the payload for extending a contract.
type RenewRequest struct {
	EndDate string `json:"end_date"`
}

// SetPriceRequest is the payload for overriding a board's season price.
type SetPriceRequest struct {
	PricePerSeason int64 `json:"price_per_season"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return t, nil
}
