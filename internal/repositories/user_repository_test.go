package repositories

import (
	"context"
	"testing"

	"railbooking/internal/domain"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryUserStore(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	u := &User{Name: "Asha Rao", Email: "Asha@Example.com", PasswordHash: "hash"}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}

	// lookup is case insensitive
	got, err := store.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Name != "Asha Rao" {
		t.Errorf("unexpected user: %+v", got)
	}

	if err := store.Create(ctx, &User{Email: "ASHA@example.com"}); !domain.IsValidation(err) {
		t.Errorf("expected validation error on duplicate email, got %v", err)
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !domain.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash"}).
			AddRow(7, "Asha Rao", "asha@example.com", "9876543210", "hash"))

	repo := UserRepository{DB: db}
	u, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if u.ID != 7 || u.Name != "Asha Rao" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Asha Rao", "asha@example.com", "9876543210", "hash").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := UserRepository{DB: db}
	u := &User{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210", PasswordHash: "hash"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID != 7 {
		t.Errorf("expected id 7, got %d", u.ID)
	}
}
