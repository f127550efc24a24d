package models

import "time"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "held"
	SeatOccupied  SeatStatus = "occupied"
)

type SeatPosition string

const (
	PositionWindow SeatPosition = "window"
	PositionMiddle SeatPosition = "middle"
	PositionAisle  SeatPosition = "aisle"
)

// Seat belongs to exactly one (train, date, class) partition and is
// addressed by its stable code (row + column, e.g. "3C").
type Seat struct {
	Code     string       `json:"code"`
	Row      int          `json:"row"`
	Column   string       `json:"column"`
	Position SeatPosition `json:"position"`
	Status   SeatStatus   `json:"status"`
}

// Hold is a provisional, time-bounded claim on a seat set. The owning
// reservation is the exclusive owner until confirm, release or expiry.
type Hold struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	SeatCodes     []string  `json:"seat_codes"`
	ExpiresAt     time.Time `json:"expires_at"`
	Confirmed     bool      `json:"confirmed"`
}

// Expired reports whether the hold has lapsed at instant now. Both the
// background sweep and the check-on-read path go through this single
// predicate so they cannot disagree on the expiry instant.
func (h Hold) Expired(now time.Time) bool {
	return !h.Confirmed && now.After(h.ExpiresAt)
}
