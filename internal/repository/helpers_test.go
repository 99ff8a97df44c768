package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

var listingColumns = []string{
	"listing_id", "account_id", "title", "brand", "model", "year", "price", "mileage",
	"description", "contact_name", "contact_phone", "status", "created_at", "expires_at", "views",
}

func listingRow(rows *sqlmock.Rows, id, accountID, title, status string, views int64, created time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, accountID, title, "Toyota", "Yaris", 2020, int64(5000000), int64(40000),
		"one owner", "Ana", "+56911111111", status, created, created.Add(60*24*time.Hour), views,
	)
}

var imageColumns = []string{"image_id", "listing_id", "object_name", "image_url", "position", "created_at"}

var accountColumns = []string{"account_id", "email", "password_hash", "phone", "role", "created_at"}
