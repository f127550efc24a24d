package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
	"railbooking/internal/utils"

	"github.com/google/uuid"
)

// WorkflowService drives a reservation from trip query to confirmed
// ticket and back through cancellation. It owns in-flight reservations;
// once a reservation confirms, ownership moves to the PNR registry.
type WorkflowService struct {
	mu       sync.Mutex
	inflight map[string]*models.Reservation

	Catalog   domain.Catalog
	Inventory *InventoryService
	Verifier  domain.IdentityVerifier
	Gateway   domain.PaymentGateway
	Registry  domain.PNRRegistry
	Fare      FareService
	Now       func() time.Time
}

func NewWorkflowService(catalog domain.Catalog, inv *InventoryService, verifier domain.IdentityVerifier, gateway domain.PaymentGateway, registry domain.PNRRegistry, fare FareService) *WorkflowService {
	return &WorkflowService{
		inflight:  make(map[string]*models.Reservation),
		Catalog:   catalog,
		Inventory: inv,
		Verifier:  verifier,
		Gateway:   gateway,
		Registry:  registry,
		Fare:      fare,
		Now:       time.Now,
	}
}

func shortHex(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:n])
}

func newReservationID() string { return "TKT" + shortHex(8) }
func newPNR() string           { return "PNR" + shortHex(6) }

// SubmitQuery validates the trip query and manifest and opens a draft
// reservation.
func (s *WorkflowService) SubmitQuery(ctx context.Context, q models.TripQuery, manifest []models.Passenger, userID int64) (*models.Reservation, error) {
	if strings.TrimSpace(q.Origin) == "" || strings.TrimSpace(q.Destination) == "" {
		return nil, domain.ValidationError{Field: "route", Msg: "origin and destination are required"}
	}
	if _, err := utils.ParseDate(q.TravelDate); err != nil {
		return nil, domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	if q.PassengerCount < 1 {
		return nil, domain.ValidationError{Field: "passenger_count", Msg: "must be at least 1"}
	}
	switch q.Tier {
	case models.TierRegular, models.TierTatkal:
	case "":
		q.Tier = models.TierRegular
	default:
		return nil, domain.ValidationError{Field: "tier", Msg: "must be regular or tatkal"}
	}
	if len(manifest) != q.PassengerCount {
		return nil, domain.ValidationError{
			Field: "manifest",
			Msg:   fmt.Sprintf("expected %d passengers, got %d", q.PassengerCount, len(manifest)),
		}
	}
	for i, p := range manifest {
		if field, msg, ok := p.Validate(); !ok {
			return nil, domain.ValidationError{
				Field: fmt.Sprintf("passenger[%d].%s", i, field),
				Msg:   msg,
			}
		}
	}

	now := s.now()
	res := &models.Reservation{
		ID:        newReservationID(),
		UserID:    userID,
		Query:     q,
		Manifest:  append([]models.Passenger(nil), manifest...),
		State:     models.StateDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.inflight[res.ID] = res
	s.mu.Unlock()

	utils.LogEvent("", "workflow", "submit_query", fmt.Sprintf("reservation=%s passengers=%d tier=%s", res.ID, len(manifest), q.Tier))
	snap := *res
	return &snap, nil
}

// SelectTrainAndClass annotates the draft with a train and fare class
// and computes the price quote. The fare is always recomputed from the
// catalog, never carried over from a previous class.
func (s *WorkflowService) SelectTrainAndClass(ctx context.Context, reservationID, trainNumber string, class models.FareClass) (*models.Reservation, error) {
	if !class.Valid() {
		return nil, domain.ValidationError{Field: "class", Msg: "unknown fare class"}
	}
	train, err := s.Catalog.GetTrain(ctx, trainNumber)
	if err != nil {
		return nil, err
	}
	base, err := s.Catalog.FareClassPrice(ctx, trainNumber, class)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.getLocked(reservationID)
	if err != nil {
		return nil, err
	}
	if res.State != models.StateDraft && res.State != models.StateIdentityPending {
		return nil, domain.ValidationError{Field: "state", Msg: "train can only be chosen before seats are held"}
	}

	res.Train = train
	res.Class = class
	res.FarePerSeat = base
	res.TotalFare = s.Fare.Quote(base, len(res.Manifest))
	res.UpdatedAt = s.now()

	snap := *res
	return &snap, nil
}

// GateIdentity opens the tatkal identity gate: it issues a verifier
// challenge for the lead passenger's document and parks the
// reservation in IdentityPending until the challenge is confirmed.
func (s *WorkflowService) GateIdentity(ctx context.Context, reservationID, documentID string) (*models.Reservation, string, error) {
	s.mu.Lock()
	res, err := s.getLocked(reservationID)
	if err != nil {
		s.mu.Unlock()
		return nil, "", err
	}
	if res.Query.Tier != models.TierTatkal {
		s.mu.Unlock()
		return nil, "", domain.ValidationError{Field: "tier", Msg: "identity verification applies to tatkal bookings only"}
	}
	if res.State != models.StateDraft && res.State != models.StateIdentityPending {
		s.mu.Unlock()
		return nil, "", domain.ValidationError{Field: "state", Msg: "identity gate is only open before seats are held"}
	}
	s.mu.Unlock()

	challengeID, err := s.Verifier.RequestChallenge(ctx, documentID)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err = s.getLocked(reservationID)
	if err != nil {
		return nil, "", err
	}
	res.State = models.StateIdentityPending
	res.ChallengeID = challengeID
	res.UpdatedAt = s.now()

	snap := *res
	return &snap, challengeID, nil
}

// ConfirmIdentity submits the OTP code. On success the reservation
// returns to Draft with the tatkal gate open.
func (s *WorkflowService) ConfirmIdentity(ctx context.Context, reservationID, code string) (*models.Reservation, error) {
	s.mu.Lock()
	res, err := s.getLocked(reservationID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if res.State != models.StateIdentityPending || res.ChallengeID == "" {
		s.mu.Unlock()
		return nil, domain.ValidationError{Field: "state", Msg: "no identity challenge pending"}
	}
	challengeID := res.ChallengeID
	s.mu.Unlock()

	if err := s.Verifier.ConfirmChallenge(ctx, challengeID, code); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err = s.getLocked(reservationID)
	if err != nil {
		return nil, err
	}
	res.Verified = true
	res.ChallengeID = ""
	res.State = models.StateDraft
	res.UpdatedAt = s.now()

	snap := *res
	return &snap, nil
}

// SelectSeats holds the requested seats all-or-nothing. Tatkal
// reservations must have passed the identity gate first; on failure the
// reservation keeps its prior state and no seats are held.
func (s *WorkflowService) SelectSeats(ctx context.Context, reservationID string, seatCodes []string) (*models.Reservation, error) {
	s.mu.Lock()
	res, err := s.getLocked(reservationID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if res.Query.Tier == models.TierTatkal && !res.Verified {
		s.mu.Unlock()
		return nil, domain.VerificationError{Reason: domain.ReasonNotVerified}
	}
	if res.State != models.StateDraft {
		s.mu.Unlock()
		return nil, domain.ValidationError{Field: "state", Msg: "seats can only be selected from a draft reservation"}
	}
	if res.Train == nil || res.Class == "" {
		s.mu.Unlock()
		return nil, domain.ValidationError{Field: "train", Msg: "select a train and class first"}
	}
	trainNumber := res.Train.Number
	date := res.Query.TravelDate
	class := res.Class
	needed := len(res.Manifest)
	s.mu.Unlock()

	hold, err := s.Inventory.Hold(reservationID, trainNumber, date, class, seatCodes, needed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err = s.getLocked(reservationID)
	if err != nil {
		s.Inventory.ReleaseHold(hold.ID)
		return nil, err
	}

	assignments := make([]models.SeatAssignment, len(seatCodes))
	for i, code := range seatCodes {
		assignments[i] = models.SeatAssignment{PassengerIndex: i, SeatCode: code}
	}
	res.Seats = assignments
	res.HoldID = hold.ID
	res.HoldExpiresAt = hold.ExpiresAt
	res.State = models.StateSeatsHeld
	res.UpdatedAt = s.now()

	snap := *res
	return &snap, nil
}

// Pay charges the gateway and, on success, confirms seats, assigns the
// PNR and hands the reservation to the registry. A gateway decline or
// timeout returns the reservation to SeatsHeld; retry is allowed until
// the hold TTL lapses.
func (s *WorkflowService) Pay(ctx context.Context, reservationID, token, method string) (*models.Reservation, error) {
	s.mu.Lock()
	res, err := s.getLocked(reservationID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.expireLocked(res); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if res.State == models.StatePaymentPending {
		s.mu.Unlock()
		return nil, domain.PaymentError{Reason: "payment already in progress"}
	}
	if res.State != models.StateSeatsHeld {
		s.mu.Unlock()
		return nil, domain.ValidationError{Field: "state", Msg: "payment requires held seats"}
	}
	res.State = models.StatePaymentPending
	res.PaymentMethod = method
	amount := res.TotalFare
	holdID := res.HoldID
	s.mu.Unlock()

	chargeID, chargeErr := s.Gateway.Charge(ctx, token, amount)

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err = s.getLocked(reservationID)
	if err != nil {
		return nil, err
	}

	if chargeErr != nil {
		res.State = models.StateSeatsHeld
		res.UpdatedAt = s.now()
		if ctx.Err() != nil {
			return nil, domain.PaymentError{Reason: "gateway timeout", Err: ctx.Err()}
		}
		if domain.IsPayment(chargeErr) {
			return nil, chargeErr
		}
		return nil, domain.PaymentError{Reason: "gateway error", Err: chargeErr}
	}

	if err := s.Inventory.Confirm(holdID); err != nil {
		if domain.IsExpired(err) {
			res.State = models.StateExpired
			res.UpdatedAt = s.now()
			delete(s.inflight, res.ID)
			return nil, domain.ExpiredError{Msg: "hold expired before confirmation", Err: err}
		}
		res.State = models.StateSeatsHeld
		res.UpdatedAt = s.now()
		return nil, err
	}

	res.PNR = newPNR()
	res.TransactionID = chargeID
	res.State = models.StateConfirmed
	res.UpdatedAt = s.now()

	if err := s.Registry.Put(ctx, res); err != nil {
		return nil, domain.InternalError{Msg: "failed to record reservation", Err: err}
	}
	delete(s.inflight, res.ID)

	utils.LogEvent("", "workflow", "confirmed", fmt.Sprintf("reservation=%s pnr=%s amount=%d", res.ID, res.PNR, res.TotalFare))
	snap := *res
	return &snap, nil
}

// Abandon cancels an unconfirmed reservation and releases any hold.
func (s *WorkflowService) Abandon(ctx context.Context, reservationID string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.getLocked(reservationID)
	if err != nil {
		return nil, err
	}
	if res.State == models.StatePaymentPending {
		return nil, domain.PaymentError{Reason: "payment in progress"}
	}
	if res.HoldID != "" {
		s.Inventory.ReleaseHold(res.HoldID)
		res.HoldID = ""
	}
	res.State = models.StateCancelled
	res.UpdatedAt = s.now()
	delete(s.inflight, res.ID)

	snap := *res
	return &snap, nil
}

// Cancel cancels the given passenger indices on a confirmed
// reservation, releasing their seats and computing the refund under the
// configured policy. The registry serializes concurrent cancellations
// on the same PNR, so each passenger refunds at most once.
func (s *WorkflowService) Cancel(ctx context.Context, req models.CancellationRequest) (*models.Reservation, models.Money, error) {
	if !req.Confirm {
		return nil, 0, domain.ValidationError{Field: "confirm", Msg: "cancellation not confirmed"}
	}
	if len(req.PassengerIndices) == 0 {
		return nil, 0, domain.ValidationError{Field: "passenger_indices", Msg: "nothing selected"}
	}

	var refund models.Money
	var released []string
	var train string
	var date string
	var class models.FareClass

	updated, err := s.Registry.Update(ctx, req.PNR, func(res *models.Reservation) error {
		if res.State != models.StateConfirmed && res.State != models.StatePartiallyCancelled {
			return domain.ValidationError{Field: "state", Msg: "only confirmed reservations can be cancelled"}
		}

		for _, idx := range req.PassengerIndices {
			if idx < 0 || idx >= len(res.Seats) {
				return domain.ValidationError{Field: "passenger_indices", Msg: fmt.Sprintf("index %d out of range", idx)}
			}
		}

		paid := s.Fare.PerPassenger(res.TotalFare, len(res.Manifest))
		seen := make(map[int]bool, len(req.PassengerIndices))
		for _, idx := range req.PassengerIndices {
			if seen[idx] || res.Seats[idx].Cancelled {
				continue
			}
			seen[idx] = true

			amount := s.Fare.Refund(paid, []int{idx})
			res.Seats[idx].Cancelled = true
			res.Seats[idx].Refunded = amount
			refund += amount
			released = append(released, res.Seats[idx].SeatCode)
		}

		res.RefundTotal += refund
		if len(res.ActiveSeatCodes()) == 0 {
			res.State = models.StateCancelled
		} else {
			res.State = models.StatePartiallyCancelled
		}
		res.UpdatedAt = s.now()

		train = res.Train.Number
		date = res.Query.TravelDate
		class = res.Class
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if len(released) > 0 {
		s.Inventory.ReleaseSeats(train, date, class, released)
	}

	utils.LogEvent("", "workflow", "cancel", fmt.Sprintf("pnr=%s released=%d refund=%d", req.PNR, len(released), refund))
	return updated, refund, nil
}

// Status looks up a reservation: confirmed ones by PNR in the registry,
// in-flight ones by reservation id.
func (s *WorkflowService) Status(ctx context.Context, pnr string) (*models.Reservation, error) {
	return s.Registry.GetByPNR(ctx, pnr)
}

// Get returns an in-flight reservation snapshot, applying lazy expiry.
func (s *WorkflowService) Get(ctx context.Context, reservationID string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.getLocked(reservationID)
	if err != nil {
		return nil, err
	}
	_ = s.expireLocked(res)
	snap := *res
	return &snap, nil
}

func (s *WorkflowService) getLocked(reservationID string) (*models.Reservation, error) {
	res, ok := s.inflight[reservationID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "reservation " + reservationID}
	}
	return res, nil
}

// expireLocked applies the lazy hold-TTL check to an in-flight
// reservation. Caller holds s.mu.
func (s *WorkflowService) expireLocked(res *models.Reservation) error {
	if res.State != models.StateSeatsHeld {
		return nil
	}
	if res.HoldExpiresAt.IsZero() || !s.now().After(res.HoldExpiresAt) {
		return nil
	}
	s.Inventory.ReleaseHold(res.HoldID)
	res.State = models.StateExpired
	res.UpdatedAt = s.now()
	delete(s.inflight, res.ID)
	return domain.ExpiredError{Msg: "seat hold expired, restart from seat selection"}
}

func (s *WorkflowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
