package domain

import (
	"context"

	"railbooking/internal/domain/models"
)

// Catalog is the read-only train and fare lookup. Implementations may
// be database-backed or seeded in memory.
type Catalog interface {
	ListTrains(ctx context.Context, origin, destination, date string) ([]models.TrainService, error)
	GetTrain(ctx context.Context, number string) (*models.TrainService, error)
	FareClassPrice(ctx context.Context, trainNumber string, class models.FareClass) (models.Money, error)
}

// PNRRegistry is the durable map from record locator to reservation.
// Update serializes mutations per PNR; the mutator runs under the
// registry's write discipline so concurrent cancellations cannot
// interleave.
type PNRRegistry interface {
	Put(ctx context.Context, r *models.Reservation) error
	GetByPNR(ctx context.Context, pnr string) (*models.Reservation, error)
	Update(ctx context.Context, pnr string, mutate func(*models.Reservation) error) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Reservation, error)
}

// IdentityVerifier gates tatkal bookings. RequestChallenge rejects
// document ids that are not exactly twelve digits.
type IdentityVerifier interface {
	RequestChallenge(ctx context.Context, documentID string) (challengeID string, err error)
	ConfirmChallenge(ctx context.Context, challengeID, code string) error
}

// PaymentGateway is the external charge call. A context deadline set by
// the caller bounds the wait; deadline exceeded is a gateway failure.
type PaymentGateway interface {
	Charge(ctx context.Context, token string, amount models.Money) (chargeID string, err error)
}

// RefundPolicy computes the refund for one cancelled passenger given
// what that passenger paid. Pluggable so tiered time-based rules can be
// added without touching callers.
type RefundPolicy interface {
	RefundFor(paid models.Money) models.Money
}
