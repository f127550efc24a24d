package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
	"railbooking/internal/utils"

	"github.com/google/uuid"
)

// DefaultHoldTTL bounds how long seats stay held before payment.
const DefaultHoldTTL = 15 * time.Minute

var defaultColumns = []string{"A", "B", "C", "D", "E", "F"}

// InventoryService owns the seat lifecycle for every (train, date,
// class) partition. Each partition has its own lock, so one reservation
// paying never blocks seat selection on another train.
type InventoryService struct {
	mu         sync.Mutex
	partitions map[string]*seatPartition
	holdIndex  map[string]*seatPartition

	HoldTTL time.Duration
	Rows    int
	Now     func() time.Time
}

type seatPartition struct {
	mu    sync.Mutex
	seats map[string]*models.Seat
	holds map[string]*models.Hold
	owner map[string]string // seat code -> hold id
}

func NewInventoryService(holdTTL time.Duration, rows int) *InventoryService {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	if rows <= 0 {
		rows = 5
	}
	return &InventoryService{
		partitions: make(map[string]*seatPartition),
		holdIndex:  make(map[string]*seatPartition),
		HoldTTL:    holdTTL,
		Rows:       rows,
		Now:        time.Now,
	}
}

func partitionKey(train, date string, class models.FareClass) string {
	return fmt.Sprintf("%s|%s|%s", train, date, class)
}

// seatPosition follows the coach layout: A/F window, C/D aisle, B/E middle.
func seatPosition(column string) models.SeatPosition {
	switch column {
	case "A", "F":
		return models.PositionWindow
	case "C", "D":
		return models.PositionAisle
	default:
		return models.PositionMiddle
	}
}

func (s *InventoryService) partition(train, date string, class models.FareClass) *seatPartition {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey(train, date, class)
	if p, ok := s.partitions[key]; ok {
		return p
	}
	p := &seatPartition{
		seats: make(map[string]*models.Seat),
		holds: make(map[string]*models.Hold),
		owner: make(map[string]string),
	}
	for row := 1; row <= s.Rows; row++ {
		for _, col := range defaultColumns {
			code := fmt.Sprintf("%d%s", row, col)
			p.seats[code] = &models.Seat{
				Code:     code,
				Row:      row,
				Column:   col,
				Position: seatPosition(col),
				Status:   models.SeatAvailable,
			}
		}
	}
	s.partitions[key] = p
	return p
}

// expireLocked releases every lapsed hold. Must run with p.mu held;
// both the sweep and every read path call it so stale holds are never
// observed.
func (p *seatPartition) expireLocked(now time.Time) {
	for id, h := range p.holds {
		if !h.Expired(now) {
			continue
		}
		for _, code := range h.SeatCodes {
			if seat, ok := p.seats[code]; ok && seat.Status == models.SeatHeld {
				seat.Status = models.SeatAvailable
			}
			delete(p.owner, code)
		}
		delete(p.holds, id)
	}
}

// ListAvailable returns a snapshot of available seats sorted by code.
func (s *InventoryService) ListAvailable(train, date string, class models.FareClass) []models.Seat {
	p := s.partition(train, date, class)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked(s.Now())

	out := make([]models.Seat, 0, len(p.seats))
	for _, seat := range p.seats {
		if seat.Status == models.SeatAvailable {
			out = append(out, *seat)
		}
	}
	sortSeats(out)
	return out
}

// SeatMap returns every seat with its current status, sorted by code.
func (s *InventoryService) SeatMap(train, date string, class models.FareClass) []models.Seat {
	p := s.partition(train, date, class)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked(s.Now())

	out := make([]models.Seat, 0, len(p.seats))
	for _, seat := range p.seats {
		out = append(out, *seat)
	}
	sortSeats(out)
	return out
}

func sortSeats(seats []models.Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Column < seats[j].Column
	})
}

// Hold claims the requested seats all-or-nothing for a reservation.
// needed is the manifest size; requesting any other number of seats is
// rejected before anything is touched.
func (s *InventoryService) Hold(reservationID, train, date string, class models.FareClass, seatCodes []string, needed int) (*models.Hold, error) {
	if len(seatCodes) != needed {
		return nil, domain.InventoryConflictError{
			Reason: domain.ReasonSeatCountMismatch,
			Seats:  seatCodes,
		}
	}
	seen := make(map[string]bool, len(seatCodes))
	for _, code := range seatCodes {
		if seen[code] {
			return nil, domain.InventoryConflictError{
				Reason: domain.ReasonSeatCountMismatch,
				Seats:  []string{code},
			}
		}
		seen[code] = true
	}

	p := s.partition(train, date, class)
	now := s.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked(now)

	var blocked []string
	for _, code := range seatCodes {
		seat, ok := p.seats[code]
		if !ok || seat.Status != models.SeatAvailable {
			blocked = append(blocked, code)
		}
	}
	if len(blocked) > 0 {
		return nil, domain.InventoryConflictError{
			Reason: domain.ReasonSeatUnavailable,
			Seats:  blocked,
		}
	}

	hold := &models.Hold{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		SeatCodes:     append([]string(nil), seatCodes...),
		ExpiresAt:     now.Add(s.HoldTTL),
	}
	for _, code := range seatCodes {
		p.seats[code].Status = models.SeatHeld
		p.owner[code] = hold.ID
	}
	p.holds[hold.ID] = hold

	s.mu.Lock()
	s.holdIndex[hold.ID] = p
	s.mu.Unlock()

	utils.LogEvent("", "inventory", "hold", fmt.Sprintf("reservation=%s seats=%d", reservationID, len(seatCodes)))
	held := *hold
	return &held, nil
}

// Confirm flips held seats to occupied. Idempotent once confirmed.
func (s *InventoryService) Confirm(holdID string) error {
	s.mu.Lock()
	p := s.holdIndex[holdID]
	s.mu.Unlock()
	if p == nil {
		return domain.InventoryConflictError{Reason: domain.ReasonHoldNotFound}
	}

	now := s.Now()
	p.mu.Lock()
	defer p.mu.Unlock()

	hold, ok := p.holds[holdID]
	if !ok {
		return domain.InventoryConflictError{Reason: domain.ReasonHoldNotFound}
	}
	if hold.Confirmed {
		return nil
	}
	if hold.Expired(now) {
		p.expireLocked(now)
		return domain.ExpiredError{Msg: "hold expired"}
	}

	for _, code := range hold.SeatCodes {
		if seat, ok := p.seats[code]; ok {
			seat.Status = models.SeatOccupied
		}
	}
	hold.Confirmed = true
	return nil
}

// ReleaseHold frees the seats of one hold. No-op when nothing matches.
func (s *InventoryService) ReleaseHold(holdID string) {
	s.mu.Lock()
	p := s.holdIndex[holdID]
	delete(s.holdIndex, holdID)
	s.mu.Unlock()
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	hold, ok := p.holds[holdID]
	if !ok {
		return
	}
	for _, code := range hold.SeatCodes {
		if seat, ok := p.seats[code]; ok {
			seat.Status = models.SeatAvailable
		}
		delete(p.owner, code)
	}
	delete(p.holds, holdID)
}

// ReleaseSeats frees specific occupied seats, used when a confirmed
// reservation cancels some or all passengers. No-op for unknown codes.
func (s *InventoryService) ReleaseSeats(train, date string, class models.FareClass, seatCodes []string) {
	p := s.partition(train, date, class)
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, code := range seatCodes {
		if seat, ok := p.seats[code]; ok {
			seat.Status = models.SeatAvailable
		}
		delete(p.owner, code)
	}
}

// StartSweep runs the periodic expiry sweep until ctx is done. The
// sweep and the check-on-read path share Hold.Expired, so they agree on
// the expiry instant.
func (s *InventoryService) StartSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *InventoryService) sweep() {
	now := s.Now()
	s.mu.Lock()
	parts := make([]*seatPartition, 0, len(s.partitions))
	for _, p := range s.partitions {
		parts = append(parts, p)
	}
	s.mu.Unlock()

	for _, p := range parts {
		p.mu.Lock()
		p.expireLocked(now)
		p.mu.Unlock()
	}
}
