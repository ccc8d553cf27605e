package inquiry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inquiryCols = []string{"id", "brand_name", "customer_name", "customer_email", "customer_phone", "inquiry_message", "created_at"}

func TestPostgresCreate_NullPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	in := Inquiry{ID: "i-1", BrandName: "Zandu", CustomerName: "Om", CustomerEmail: "om@zandu.example", Message: "hi", CreatedAt: now}
	mock.ExpectExec("INSERT INTO brand_inquiries").
		WithArgs("i-1", "Zandu", "Om", "om@zandu.example", nil, "hi", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = NewPostgresRepository(db).Create(context.Background(), in)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM brand_inquiries").WillReturnRows(sqlmock.NewRows(inquiryCols).
		AddRow("i-2", "Cipla", "Sara", "sara@cipla.example", "022 1234", "Distribution", now).
		AddRow("i-1", "Zandu", "Om", "om@zandu.example", nil, "hi", now.Add(-time.Hour)))

	got, err := NewPostgresRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].CustomerPhone)
	assert.Equal(t, "022 1234", *got[0].CustomerPhone)
	assert.Nil(t, got[1].CustomerPhone)
}
