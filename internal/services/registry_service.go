package services

import (
	"context"
	"sort"
	"sync"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
)

// MemoryRegistry is the in-process PNR registry. Update runs the
// mutator under the registry lock, which gives single-writer-per-PNR:
// two concurrent cancellations on one PNR serialize here, so a refund
// is computed at most once per passenger index.
type MemoryRegistry struct {
	mu      sync.Mutex
	records map[string]*models.Reservation
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{records: make(map[string]*models.Reservation)}
}

func cloneReservation(res *models.Reservation) *models.Reservation {
	cp := *res
	cp.Manifest = append([]models.Passenger(nil), res.Manifest...)
	cp.Seats = append([]models.SeatAssignment(nil), res.Seats...)
	return &cp
}

func (r *MemoryRegistry) Put(ctx context.Context, res *models.Reservation) error {
	if res == nil || res.PNR == "" {
		return domain.InternalError{Msg: "reservation without PNR"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[res.PNR] = cloneReservation(res)
	return nil
}

func (r *MemoryRegistry) GetByPNR(ctx context.Context, pnr string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.records[pnr]
	if !ok {
		return nil, domain.NotFoundError{Resource: "PNR " + pnr}
	}
	return cloneReservation(res), nil
}

func (r *MemoryRegistry) Update(ctx context.Context, pnr string, mutate func(*models.Reservation) error) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.records[pnr]
	if !ok {
		return nil, domain.NotFoundError{Resource: "PNR " + pnr}
	}
	if err := mutate(res); err != nil {
		return nil, err
	}
	return cloneReservation(res), nil
}

func (r *MemoryRegistry) ListByUser(ctx context.Context, userID int64) ([]*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Reservation{}
	for _, res := range r.records {
		if res.UserID == userID {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
