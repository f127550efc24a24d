package models

import "time"

// ReservationState is the workflow state machine position.
type ReservationState string

const (
	StateDraft              ReservationState = "draft"
	StateIdentityPending    ReservationState = "identity_pending"
	StateSeatsHeld          ReservationState = "seats_held"
	StatePaymentPending     ReservationState = "payment_pending"
	StateConfirmed          ReservationState = "confirmed"
	StateCancelled          ReservationState = "cancelled"
	StatePartiallyCancelled ReservationState = "partially_cancelled"
	StateExpired            ReservationState = "expired"
)

// Terminal reports whether no further transition can leave the state.
func (s ReservationState) Terminal() bool {
	switch s {
	case StateCancelled, StateExpired:
		return true
	}
	return false
}

// SeatAssignment pairs a manifest index with its seat.
type SeatAssignment struct {
	PassengerIndex int    `json:"passenger_index"`
	SeatCode       string `json:"seat_code"`
	Cancelled      bool   `json:"cancelled"`
	Refunded       Money  `json:"refunded,omitempty"`
}

// Reservation is the server-owned booking aggregate. The workflow owns
// it until Confirmed; after that the PNR registry does.
type Reservation struct {
	ID            string           `json:"id"`
	PNR           string           `json:"pnr,omitempty"`
	UserID        int64            `json:"user_id,omitempty"`
	Query         TripQuery        `json:"query"`
	Manifest      []Passenger      `json:"manifest"`
	Train         *TrainService    `json:"train,omitempty"`
	Class         FareClass        `json:"class,omitempty"`
	FarePerSeat   Money            `json:"fare_per_seat,omitempty"`
	TotalFare     Money            `json:"total_fare,omitempty"`
	Seats         []SeatAssignment `json:"seats,omitempty"`
	HoldID        string           `json:"-"`
	HoldExpiresAt time.Time        `json:"hold_expires_at,omitempty"`
	State         ReservationState `json:"state"`
	Verified      bool             `json:"verified"`
	ChallengeID   string           `json:"-"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`
	RefundTotal   Money            `json:"refund_total,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ActiveSeatCodes returns codes of seats not yet cancelled, in manifest
// order.
func (r *Reservation) ActiveSeatCodes() []string {
	out := make([]string, 0, len(r.Seats))
	for _, s := range r.Seats {
		if !s.Cancelled {
			out = append(out, s.SeatCode)
		}
	}
	return out
}

// CancellationRequest asks to cancel a subset of passengers on a
// confirmed reservation. Confirm must be true for anything to happen.
type CancellationRequest struct {
	PNR              string `json:"pnr"`
	PassengerIndices []int  `json:"passenger_indices"`
	Confirm          bool   `json:"confirm"`
}
