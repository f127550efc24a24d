package services

import (
	"sync"
	"testing"
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTrain = "12001"
	testDate  = "2026-09-15"
)

func newTestInventory(ttl time.Duration) *InventoryService {
	return NewInventoryService(ttl, 5)
}

func TestHold_Success(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	hold, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A", "1B"}, 2)
	require.NoError(t, err)
	assert.Len(t, hold.SeatCodes, 2)
	assert.False(t, hold.ExpiresAt.IsZero())

	for _, s := range inv.ListAvailable(testTrain, testDate, models.SecondAC) {
		assert.NotContains(t, []string{"1A", "1B"}, s.Code)
	}
}

func TestHold_SeatUnavailable(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A", "1B"}, 2)
	require.NoError(t, err)

	_, err = inv.Hold("R2", testTrain, testDate, models.SecondAC, []string{"1A"}, 1)
	require.Error(t, err)
	assert.Equal(t, domain.ReasonSeatUnavailable, domain.ConflictReason(err))
}

func TestHold_AllOrNothing(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A"}, 1)
	require.NoError(t, err)

	// 1A blocked, so neither 1A nor 2C may be held
	_, err = inv.Hold("R2", testTrain, testDate, models.SecondAC, []string{"1A", "2C"}, 2)
	require.Error(t, err)

	available := map[string]bool{}
	for _, s := range inv.ListAvailable(testTrain, testDate, models.SecondAC) {
		available[s.Code] = true
	}
	assert.True(t, available["2C"], "2C must stay available after failed hold")
}

func TestHold_SeatCountMismatch(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A"}, 2)
	require.Error(t, err)
	assert.Equal(t, domain.ReasonSeatCountMismatch, domain.ConflictReason(err))

	_, err = inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A", "1A"}, 2)
	require.Error(t, err)
	assert.Equal(t, domain.ReasonSeatCountMismatch, domain.ConflictReason(err))
}

func TestHold_UnknownSeatCode(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"99Z"}, 1)
	require.Error(t, err)
	assert.Equal(t, domain.ReasonSeatUnavailable, domain.ConflictReason(err))
}

func TestHold_ConcurrentOverlap_ExactlyOneWins(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = inv.Hold("R", testTrain, testDate, models.Sleeper, []string{"3C", "3D"}, 2)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, domain.ReasonSeatUnavailable, domain.ConflictReason(err))
		}
	}
	assert.Equal(t, 1, wins, "exactly one racer may win the seats")
}

func TestConfirm_TransitionsToOccupied(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	hold, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"2A"}, 1)
	require.NoError(t, err)
	require.NoError(t, inv.Confirm(hold.ID))

	// idempotent
	require.NoError(t, inv.Confirm(hold.ID))

	for _, s := range inv.SeatMap(testTrain, testDate, models.SecondAC) {
		if s.Code == "2A" {
			assert.Equal(t, models.SeatOccupied, s.Status)
		}
	}
}

func TestConfirm_HoldNotFound(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)
	err := inv.Confirm("no-such-hold")
	require.Error(t, err)
	assert.Equal(t, domain.ReasonHoldNotFound, domain.ConflictReason(err))
}

func TestConfirm_AfterExpiry_FailsAndNeverOccupies(t *testing.T) {
	inv := newTestInventory(time.Minute)
	now := time.Now()
	inv.Now = func() time.Time { return now }

	hold, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"4F"}, 1)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	err = inv.Confirm(hold.ID)
	require.Error(t, err)
	assert.True(t, domain.IsExpired(err))

	for _, s := range inv.SeatMap(testTrain, testDate, models.SecondAC) {
		if s.Code == "4F" {
			assert.Equal(t, models.SeatAvailable, s.Status)
		}
	}
}

func TestRelease_IdempotentAndVisible(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	hold, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A", "1B"}, 2)
	require.NoError(t, err)

	inv.ReleaseHold(hold.ID)
	inv.ReleaseHold(hold.ID) // no-op

	available := map[string]bool{}
	for _, s := range inv.ListAvailable(testTrain, testDate, models.SecondAC) {
		available[s.Code] = true
	}
	assert.True(t, available["1A"])
	assert.True(t, available["1B"])
}

func TestExpiry_LazyCheckFreesSeats(t *testing.T) {
	inv := newTestInventory(time.Minute)
	now := time.Now()
	inv.Now = func() time.Time { return now }

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"5A"}, 1)
	require.NoError(t, err)
	assert.Len(t, inv.ListAvailable(testTrain, testDate, models.SecondAC), 29)

	now = now.Add(90 * time.Second)
	assert.Len(t, inv.ListAvailable(testTrain, testDate, models.SecondAC), 30)

	// seat can be held again by someone else
	_, err = inv.Hold("R2", testTrain, testDate, models.SecondAC, []string{"5A"}, 1)
	require.NoError(t, err)
}

func TestSweep_ReleasesExpiredHolds(t *testing.T) {
	inv := newTestInventory(time.Minute)
	now := time.Now()
	inv.Now = func() time.Time { return now }

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"2B"}, 1)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	inv.sweep()

	for _, s := range inv.SeatMap(testTrain, testDate, models.SecondAC) {
		if s.Code == "2B" {
			assert.Equal(t, models.SeatAvailable, s.Status)
		}
	}
}

func TestSeatPositions(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)
	positions := map[string]models.SeatPosition{}
	for _, s := range inv.SeatMap(testTrain, testDate, models.General) {
		positions[s.Column] = s.Position
	}
	assert.Equal(t, models.PositionWindow, positions["A"])
	assert.Equal(t, models.PositionMiddle, positions["B"])
	assert.Equal(t, models.PositionAisle, positions["C"])
	assert.Equal(t, models.PositionAisle, positions["D"])
	assert.Equal(t, models.PositionMiddle, positions["E"])
	assert.Equal(t, models.PositionWindow, positions["F"])
}

func TestPartitionsAreIndependent(t *testing.T) {
	inv := newTestInventory(15 * time.Minute)

	_, err := inv.Hold("R1", testTrain, testDate, models.SecondAC, []string{"1A"}, 1)
	require.NoError(t, err)

	// same seat code, different class partition
	_, err = inv.Hold("R2", testTrain, testDate, models.Sleeper, []string{"1A"}, 1)
	require.NoError(t, err)

	// same seat code, different date
	_, err = inv.Hold("R3", testTrain, "2026-09-16", models.SecondAC, []string{"1A"}, 1)
	require.NoError(t, err)
}
