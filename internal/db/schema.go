package db

import "database/sql"

// EnsureSchema creates the tables the repositories need when they do
// not exist yet. Safe to run on every start.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return nil
	}
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(100) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS trains (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			number VARCHAR(10) NOT NULL,
			departure_time VARCHAR(5) NOT NULL,
			arrival_time VARCHAR(5) NOT NULL,
			duration VARCHAR(10) NOT NULL,
			UNIQUE KEY uniq_number (number)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			train_id BIGINT NOT NULL,
			from_station VARCHAR(100) NOT NULL,
			to_station VARCHAR(100) NOT NULL,
			distance_km INT NOT NULL DEFAULT 0,
			first_ac_price BIGINT NOT NULL DEFAULT 0,
			second_ac_price BIGINT NOT NULL DEFAULT 0,
			third_ac_price BIGINT NOT NULL DEFAULT 0,
			sleeper_price BIGINT NOT NULL DEFAULT 0,
			general_price BIGINT NOT NULL DEFAULT 0,
			KEY idx_train (train_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS reservations (
			pnr VARCHAR(10) PRIMARY KEY,
			booking_id VARCHAR(20) NOT NULL,
			user_id BIGINT NOT NULL DEFAULT 0,
			origin VARCHAR(100) NOT NULL,
			destination VARCHAR(100) NOT NULL,
			travel_date VARCHAR(10) NOT NULL,
			tier VARCHAR(10) NOT NULL,
			class VARCHAR(10) NOT NULL,
			state VARCHAR(25) NOT NULL,
			total_fare BIGINT NOT NULL DEFAULT 0,
			refund_total BIGINT NOT NULL DEFAULT 0,
			payment_method VARCHAR(20) NOT NULL DEFAULT '',
			transaction_id VARCHAR(100) NOT NULL DEFAULT '',
			manifest_json JSON NOT NULL,
			seats_json JSON NOT NULL,
			train_json JSON,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE KEY uniq_booking (booking_id),
			KEY idx_user (user_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
