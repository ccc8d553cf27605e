package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO wishlist").WithArgs("u1", syrupID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO wishlist").WithArgs("u1", syrupID).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Add(context.Background(), "u1", syrupID); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := repo.Add(context.Background(), "u1", syrupID); !errors.Is(err, ErrAlreadyListed) {
		t.Fatalf("expected ErrAlreadyListed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRemoveAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM wishlist").WithArgs("u1", splintID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM wishlist").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(splintID).AddRow(syrupID))

	if err := repo.Remove(context.Background(), "u1", splintID); !errors.Is(err, ErrNotListed) {
		t.Fatalf("expected ErrNotListed, got %v", err)
	}
	ids, err := repo.ProductIDs(context.Background(), "u1")
	if err != nil || len(ids) != 2 || ids[0] != splintID {
		t.Fatalf("unexpected ids %v err %v", ids, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
