package repositories

import (
	"context"
	"database/sql"

	intconfig "railbooking/internal/config"
	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
)

// CatalogRepository reads trains and per-class fares from MySQL. The
// schema mirrors the admin-managed trains and routes tables.
type CatalogRepository struct {
	DB *sql.DB
}

func (r CatalogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const trainColumns = `t.id, t.name, t.number, r.from_station, r.to_station,
	t.departure_time, t.arrival_time, t.duration,
	r.first_ac_price, r.second_ac_price, r.third_ac_price, r.sleeper_price, r.general_price`

func scanTrain(scan func(dest ...any) error) (models.TrainService, error) {
	var t models.TrainService
	var first, second, third, sleeper, general int64
	err := scan(
		&t.ID, &t.Name, &t.Number, &t.Origin, &t.Dest,
		&t.Departure, &t.Arrival, &t.Duration,
		&first, &second, &third, &sleeper, &general,
	)
	if err != nil {
		return t, err
	}
	t.Fares = map[models.FareClass]models.Money{
		models.FirstAC:  models.Money(first),
		models.SecondAC: models.Money(second),
		models.ThirdAC:  models.Money(third),
		models.Sleeper:  models.Money(sleeper),
		models.General:  models.Money(general),
	}
	return t, nil
}

func (r CatalogRepository) ListTrains(ctx context.Context, origin, destination, date string) ([]models.TrainService, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+trainColumns+`
		FROM trains t
		JOIN routes r ON r.train_id = t.id
		WHERE r.from_station LIKE CONCAT('%', ?, '%')
		  AND r.to_station LIKE CONCAT('%', ?, '%')
		ORDER BY t.departure_time ASC`, origin, destination)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query trains", Err: err}
	}
	defer rows.Close()

	out := []models.TrainService{}
	for rows.Next() {
		t, err := scanTrain(rows.Scan)
		if err != nil {
			return out, domain.InternalError{Msg: "failed to scan train", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r CatalogRepository) GetTrain(ctx context.Context, number string) (*models.TrainService, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+trainColumns+`
		FROM trains t
		JOIN routes r ON r.train_id = t.id
		WHERE t.number = ?
		LIMIT 1`, number)

	t, err := scanTrain(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "train " + number}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load train", Err: err}
	}
	return &t, nil
}

func (r CatalogRepository) FareClassPrice(ctx context.Context, trainNumber string, class models.FareClass) (models.Money, error) {
	t, err := r.GetTrain(ctx, trainNumber)
	if err != nil {
		return 0, err
	}
	fare, ok := t.Fares[class]
	if !ok {
		return 0, domain.NotFoundError{Resource: "fare class " + string(class)}
	}
	return fare, nil
}
