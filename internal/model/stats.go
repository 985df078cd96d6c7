package model

import "math"

// Stats summarises occupancy and revenue over the whole catalogue.
type Stats struct {
	Total            int   `json:"total"`
	Sponsored        int   `json:"sponsored"`
	Available        int   `json:"available"`
	Reserved         int   `json:"reserved"`
	RenewalDue       int   `json:"renewal_due"`
	TotalRevenue     int64 `json:"total_revenue"`
	PotentialRevenue int64 `json:"potential_revenue"`
	OccupancyRate    int   `json:"occupancy_rate"`
}

// ComputeStats derives Stats from boards whose status has already been
// projected. It never caches.
func ComputeStats(boards []Board) Stats {
	var s Stats
	s.Total = len(boards)
	for i := range boards {
		b := &boards[i]
		switch b.Status {
		case StatusSponsored:
			s.Sponsored++
		case StatusAvailable:
			s.Available++
			s.PotentialRevenue += b.PricePerSeason
		case StatusReserved:
			s.Reserved++
		case StatusRenewalDue:
			s.RenewalDue++
		}
		if c := b.Contract; c != nil && c.PaymentStatus == PaymentPaid && c.PaidAmount != nil {
			s.TotalRevenue += *c.PaidAmount
		}
	}
	if s.Total > 0 {
		s.OccupancyRate = int(math.Round(100 * float64(s.Sponsored+s.RenewalDue) / float64(s.Total)))
	}
	return s
}
