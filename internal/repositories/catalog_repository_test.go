package repositories

import (
	"context"
	"testing"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

var trainCols = []string{
	"id", "name", "number", "from_station", "to_station",
	"departure_time", "arrival_time", "duration",
	"first_ac_price", "second_ac_price", "third_ac_price", "sleeper_price", "general_price",
}

func TestCatalogRepository_ListTrains(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trains t").
		WithArgs("New Delhi", "Mumbai Central").
		WillReturnRows(sqlmock.NewRows(trainCols).
			AddRow(1, "Rajdhani Express", "12001", "New Delhi", "Mumbai Central",
				"06:00", "14:30", "8h 30m", 3200, 1250, 950, 620, 410).
			AddRow(2, "Shatabdi Express", "12002", "New Delhi", "Mumbai Central",
				"09:15", "16:45", "7h 30m", 2800, 1950, 1350, 890, 520))

	repo := CatalogRepository{DB: db}
	trains, err := repo.ListTrains(context.Background(), "New Delhi", "Mumbai Central", "2026-09-15")
	if err != nil {
		t.Fatalf("ListTrains error: %v", err)
	}
	if len(trains) != 2 {
		t.Fatalf("expected 2 trains, got %d", len(trains))
	}
	if trains[0].Number != "12001" {
		t.Errorf("expected train 12001 first, got %s", trains[0].Number)
	}
	if trains[0].Fares[models.SecondAC] != 1250 {
		t.Errorf("expected 2nd-ac fare 1250, got %d", trains[0].Fares[models.SecondAC])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCatalogRepository_GetTrain_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trains t").
		WithArgs("99999").
		WillReturnRows(sqlmock.NewRows(trainCols))

	repo := CatalogRepository{DB: db}
	_, err = repo.GetTrain(context.Background(), "99999")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCatalogRepository_FareClassPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trains t").
		WithArgs("12001").
		WillReturnRows(sqlmock.NewRows(trainCols).
			AddRow(1, "Rajdhani Express", "12001", "New Delhi", "Mumbai Central",
				"06:00", "14:30", "8h 30m", 3200, 1250, 950, 620, 410))

	repo := CatalogRepository{DB: db}
	fare, err := repo.FareClassPrice(context.Background(), "12001", models.Sleeper)
	if err != nil {
		t.Fatalf("FareClassPrice error: %v", err)
	}
	if fare != 620 {
		t.Errorf("expected sleeper fare 620, got %d", fare)
	}
}
