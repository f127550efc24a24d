package repositories

import (
	"context"
	"testing"
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

var reservationCols = []string{
	"pnr", "booking_id", "user_id", "origin", "destination", "travel_date",
	"tier", "class", "state", "total_fare", "refund_total", "payment_method", "transaction_id",
	"manifest_json", "seats_json", "train_json", "created_at", "updated_at",
}

func reservationRow() *sqlmock.Rows {
	return sqlmock.NewRows(reservationCols).AddRow(
		"PNRAB12CD", "TKT12345678", int64(7), "New Delhi", "Mumbai Central", "2026-09-15",
		"regular", "2nd-ac", "confirmed", int64(2750), int64(0), "card", "TXN1234567890",
		[]byte(`[{"name":"Asha Rao","age":34,"gender":"Female","id_proof_type":"aadhaar","id_proof_no":"123456789012"}]`),
		[]byte(`[{"passenger_index":0,"seat_code":"1A"}]`),
		[]byte(`{"number":"12001","name":"Rajdhani Express"}`),
		time.Now(), time.Now(),
	)
}

func TestPNRRepository_Put(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := PNRRepository{DB: db}
	res := &models.Reservation{
		ID:  "TKT12345678",
		PNR: "PNRAB12CD",
		Manifest: []models.Passenger{
			{Name: "Asha Rao", Age: 34, Gender: models.GenderFemale, IDProofType: "aadhaar", IDProofNo: "123456789012"},
		},
		Seats:     []models.SeatAssignment{{PassengerIndex: 0, SeatCode: "1A"}},
		State:     models.StateConfirmed,
		TotalFare: 2750,
	}
	if err := repo.Put(context.Background(), res); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPNRRepository_GetByPNR(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE pnr = ?").
		WithArgs("PNRAB12CD").
		WillReturnRows(reservationRow())

	repo := PNRRepository{DB: db}
	res, err := repo.GetByPNR(context.Background(), "PNRAB12CD")
	if err != nil {
		t.Fatalf("GetByPNR error: %v", err)
	}
	if res.State != models.StateConfirmed {
		t.Errorf("expected confirmed, got %s", res.State)
	}
	if len(res.Manifest) != 1 || res.Manifest[0].Name != "Asha Rao" {
		t.Errorf("manifest not decoded: %+v", res.Manifest)
	}
	if res.Train == nil || res.Train.Number != "12001" {
		t.Errorf("train not decoded: %+v", res.Train)
	}
	if res.Query.PassengerCount != 1 {
		t.Errorf("passenger count should match manifest, got %d", res.Query.PassengerCount)
	}
}

func TestPNRRepository_GetByPNR_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE pnr = ?").
		WithArgs("PNRMISSING").
		WillReturnRows(sqlmock.NewRows(reservationCols))

	repo := PNRRepository{DB: db}
	_, err = repo.GetByPNR(context.Background(), "PNRMISSING")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestPNRRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE pnr = \\? FOR UPDATE").
		WithArgs("PNRAB12CD").
		WillReturnRows(reservationRow())
	mock.ExpectExec("UPDATE reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := PNRRepository{DB: db}
	res, err := repo.Update(context.Background(), "PNRAB12CD", func(r *models.Reservation) error {
		r.State = models.StateCancelled
		r.RefundTotal = 1375
		return nil
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if res.State != models.StateCancelled {
		t.Errorf("expected cancelled, got %s", res.State)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPNRRepository_Update_MutatorErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE pnr = \\? FOR UPDATE").
		WithArgs("PNRAB12CD").
		WillReturnRows(reservationRow())
	mock.ExpectRollback()

	repo := PNRRepository{DB: db}
	_, err = repo.Update(context.Background(), "PNRAB12CD", func(r *models.Reservation) error {
		return domain.ValidationError{Field: "confirm", Msg: "cancellation not confirmed"}
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPNRRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE user_id = ?").
		WithArgs(int64(7)).
		WillReturnRows(reservationRow())

	repo := PNRRepository{DB: db}
	list, err := repo.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(list) != 1 || list[0].PNR != "PNRAB12CD" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
