package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	intconfig "railbooking/internal/config"
	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
)

// PNRRepository persists confirmed reservations in MySQL. Scalar fields
// live in columns; the manifest, seats and chosen train are stored as
// JSON since they are only read back as a whole. Update takes a row
// lock on the PNR, giving single-writer-per-PNR across processes.
type PNRRepository struct {
	DB *sql.DB
}

func (r PNRRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `pnr, booking_id, user_id, origin, destination, travel_date,
	tier, class, state, total_fare, refund_total, payment_method, transaction_id,
	manifest_json, seats_json, train_json, created_at, updated_at`

func scanReservation(scan func(dest ...any) error) (*models.Reservation, error) {
	var res models.Reservation
	var tier, class, state string
	var manifestJSON, seatsJSON, trainJSON []byte
	err := scan(
		&res.PNR, &res.ID, &res.UserID, &res.Query.Origin, &res.Query.Destination, &res.Query.TravelDate,
		&tier, &class, &state, &res.TotalFare, &res.RefundTotal, &res.PaymentMethod, &res.TransactionID,
		&manifestJSON, &seatsJSON, &trainJSON, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Query.Tier = models.BookingTier(tier)
	res.Class = models.FareClass(class)
	res.State = models.ReservationState(state)
	if err := json.Unmarshal(manifestJSON, &res.Manifest); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seatsJSON, &res.Seats); err != nil {
		return nil, err
	}
	if len(trainJSON) > 0 {
		if err := json.Unmarshal(trainJSON, &res.Train); err != nil {
			return nil, err
		}
	}
	res.Query.PassengerCount = len(res.Manifest)
	return &res, nil
}

func marshalParts(res *models.Reservation) (manifest, seats, train []byte, err error) {
	if manifest, err = json.Marshal(res.Manifest); err != nil {
		return
	}
	if seats, err = json.Marshal(res.Seats); err != nil {
		return
	}
	train, err = json.Marshal(res.Train)
	return
}

func (r PNRRepository) Put(ctx context.Context, res *models.Reservation) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	manifest, seats, train, err := marshalParts(res)
	if err != nil {
		return domain.InternalError{Msg: "failed to encode reservation", Err: err}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.PNR, res.ID, res.UserID, res.Query.Origin, res.Query.Destination, res.Query.TravelDate,
		string(res.Query.Tier), string(res.Class), string(res.State), res.TotalFare, res.RefundTotal,
		res.PaymentMethod, res.TransactionID, manifest, seats, train, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return domain.InternalError{Msg: "failed to store reservation", Err: err}
	}
	return nil
}

func (r PNRRepository) GetByPNR(ctx context.Context, pnr string) (*models.Reservation, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations WHERE pnr = ?`, pnr)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "PNR " + pnr}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load reservation", Err: err}
	}
	return res, nil
}

// Update loads the row FOR UPDATE, applies the mutator and writes the
// result back inside one transaction.
func (r PNRRepository) Update(ctx context.Context, pnr string, mutate func(*models.Reservation) error) (*models.Reservation, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to begin tx", Err: err}
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations WHERE pnr = ? FOR UPDATE`, pnr)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "PNR " + pnr}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load reservation", Err: err}
	}

	if err := mutate(res); err != nil {
		return nil, err
	}

	manifest, seats, train, err := marshalParts(res)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to encode reservation", Err: err}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE reservations
		SET state=?, total_fare=?, refund_total=?, seats_json=?, manifest_json=?, train_json=?, updated_at=?
		WHERE pnr=?`,
		string(res.State), res.TotalFare, res.RefundTotal, seats, manifest, train, res.UpdatedAt, pnr,
	)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to update reservation", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Msg: "failed to commit", Err: err}
	}
	return res, nil
}

func (r PNRRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Reservation, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query reservations", Err: err}
	}
	defer rows.Close()

	out := []*models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return out, domain.InternalError{Msg: "failed to scan reservation", Err: err}
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
