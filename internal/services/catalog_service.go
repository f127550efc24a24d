package services

import (
	"context"
	"strings"
	"sync"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
)

// MemoryCatalog serves trains and fares from a seeded table. Used in
// demo mode and tests; the MySQL-backed catalog repository serves the
// same interface in production.
type MemoryCatalog struct {
	mu     sync.RWMutex
	trains []models.TrainService
}

func NewMemoryCatalog(trains []models.TrainService) *MemoryCatalog {
	return &MemoryCatalog{trains: trains}
}

// NewSeededCatalog returns a catalog with the demo timetable.
func NewSeededCatalog() *MemoryCatalog {
	return NewMemoryCatalog(seedTrains())
}

func (c *MemoryCatalog) ListTrains(ctx context.Context, origin, destination, date string) ([]models.TrainService, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	origin = strings.ToLower(strings.TrimSpace(origin))
	destination = strings.ToLower(strings.TrimSpace(destination))

	out := []models.TrainService{}
	for _, t := range c.trains {
		if origin != "" && !strings.Contains(strings.ToLower(t.Origin), origin) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(t.Dest), destination) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *MemoryCatalog) GetTrain(ctx context.Context, number string) (*models.TrainService, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.trains {
		if t.Number == number {
			cp := t
			return &cp, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "train " + number}
}

func (c *MemoryCatalog) FareClassPrice(ctx context.Context, trainNumber string, class models.FareClass) (models.Money, error) {
	t, err := c.GetTrain(ctx, trainNumber)
	if err != nil {
		return 0, err
	}
	fare, ok := t.Fares[class]
	if !ok {
		return 0, domain.NotFoundError{Resource: "fare class " + string(class)}
	}
	return fare, nil
}

func seedTrains() []models.TrainService {
	return []models.TrainService{
		{
			ID: 1, Name: "Rajdhani Express", Number: "12001",
			Origin: "New Delhi", Dest: "Mumbai Central",
			Departure: "06:00", Arrival: "14:30", Duration: "8h 30m",
			Fares: map[models.FareClass]models.Money{
				models.FirstAC:  3200,
				models.SecondAC: 1250,
				models.ThirdAC:  950,
				models.Sleeper:  620,
				models.General:  410,
			},
			Stops: []models.StationStop{
				{Name: "New Delhi", Code: "NDLS", Arrival: "Source", Departure: "06:00", Distance: 0},
				{Name: "Mathura Junction", Code: "MTJ", Arrival: "07:45", Departure: "07:47", Distance: 145},
				{Name: "Agra Cantt", Code: "AGC", Arrival: "08:30", Departure: "08:32", Distance: 200},
				{Name: "Jhansi Junction", Code: "JHS", Arrival: "10:15", Departure: "10:20", Distance: 415},
				{Name: "Bhopal Junction", Code: "BPL", Arrival: "12:30", Departure: "12:35", Distance: 680},
				{Name: "Mumbai Central", Code: "BCT", Arrival: "14:30", Departure: "Destination", Distance: 1384},
			},
		},
		{
			ID: 2, Name: "Shatabdi Express", Number: "12002",
			Origin: "New Delhi", Dest: "Mumbai Central",
			Departure: "09:15", Arrival: "16:45", Duration: "7h 30m",
			Fares: map[models.FareClass]models.Money{
				models.FirstAC:  2800,
				models.SecondAC: 1950,
				models.ThirdAC:  1350,
				models.Sleeper:  890,
				models.General:  520,
			},
		},
		{
			ID: 3, Name: "Duronto Express", Number: "12259",
			Origin: "New Delhi", Dest: "Mumbai Central",
			Departure: "14:20", Arrival: "21:50", Duration: "7h 30m",
			Fares: map[models.FareClass]models.Money{
				models.FirstAC:  3000,
				models.SecondAC: 2100,
				models.ThirdAC:  1450,
				models.Sleeper:  1100,
				models.General:  640,
			},
		},
	}
}
