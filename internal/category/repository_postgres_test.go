package category

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "slug", "name", "image_url", "position"}).
		AddRow(1, "pain-relief", "Pain Relief", "/img/pain.png", 1).
		AddRow(2, "first-aid", "First Aid", nil, 2)
	mock.ExpectQuery("FROM categories").WithArgs(100).WillReturnRows(rows)

	items, err := NewService(NewPostgresRepository(db)).List(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Image == nil || *items[0].Image != "/img/pain.png" || items[1].Image != nil {
		t.Fatalf("unexpected images %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
