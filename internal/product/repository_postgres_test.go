package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productCols = []string{"id", "name", "description", "price", "image_url", "category", "quantity", "created_at"}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(paracetamolID, "Paracetamol 500mg", "", "40.00", "/img/p.png", "pain-relief", 12, time.Now())
	mock.ExpectQuery("FROM products").WithArgs(paracetamolID).WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), paracetamolID)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if p.Quantity != 12 || p.Price.String() != "40" || p.Category == nil || *p.Category != "pain-relief" {
		t.Fatalf("unexpected product %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(bandageID).WillReturnRows(sqlmock.NewRows(productCols))

	if _, err := repo.GetByID(context.Background(), bandageID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresList_RejectsInvalidRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(bandageID, "", "", "10", nil, nil, 1, time.Now())
	mock.ExpectQuery("FROM products").WithArgs("").WillReturnRows(rows)

	if _, err := repo.List(context.Background(), ""); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for nameless row, got %v", err)
	}
}

func TestPostgresSetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET quantity").WithArgs(3, paracetamolID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET quantity").WithArgs(3, bandageID).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetStock(context.Background(), paracetamolID, 3); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := repo.SetStock(context.Background(), bandageID, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
