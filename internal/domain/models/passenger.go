package models

import "strings"

// BookingTier selects the booking mode. Tatkal requires identity
// verification before any seat can be held.
type BookingTier string

const (
	TierRegular BookingTier = "regular"
	TierTatkal  BookingTier = "tatkal"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// TripQuery is the immutable search a reservation starts from.
type TripQuery struct {
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	TravelDate     string      `json:"travel_date"` // YYYY-MM-DD
	PassengerCount int         `json:"passenger_count"`
	Tier           BookingTier `json:"tier"`
}

// Passenger is one manifest entry. Manifest order is the seat
// assignment priority order.
type Passenger struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`
	IDProofType string `json:"id_proof_type"`
	IDProofNo   string `json:"id_proof_no"`
}

// Validate checks a single manifest entry.
func (p Passenger) Validate() (field, msg string, ok bool) {
	if strings.TrimSpace(p.Name) == "" {
		return "name", "must not be empty", false
	}
	if p.Age < 1 || p.Age > 120 {
		return "age", "must be between 1 and 120", false
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return "gender", "must be Male, Female or Other", false
	}
	if strings.TrimSpace(p.IDProofType) == "" {
		return "id_proof_type", "must not be empty", false
	}
	if strings.TrimSpace(p.IDProofNo) == "" {
		return "id_proof_no", "must not be empty", false
	}
	return "", "", true
}
