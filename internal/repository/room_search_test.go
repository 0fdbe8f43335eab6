package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomTestRows(ids ...uint64) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "hotel_id", "room_type", "price_per_night", "discounted_price", "featured_deal",
		"adult_capacity", "child_capacity", "image_urls", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, 9, "Double", 100.0, nil, false, 2, 1, `["https://img.example/1.jpg"]`, now, now)
	}
	return rows
}

func TestRoomSearchAvailabilityWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRoomRepo(db)

	ci, _ := time.Parse("2006-01-02", "2026-09-10")
	co := ci.AddDate(0, 0, 3)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms r WHERE NOT EXISTS`).
		WithArgs(ci, co, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT r\.id,.+ FROM rooms r WHERE NOT EXISTS`).
		WithArgs(ci, co, 2, 10, 0).
		WillReturnRows(roomTestRows(3, 4, 5))

	rooms, total, err := repo.Search(context.Background(), RoomSearchQuery{
		CheckIn:  ci,
		CheckOut: co,
		Adults:   2,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rooms, 3)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, rooms[0].ImageURLs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomSearchTypeAndPriceFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRoomRepo(db)

	// Price bounds apply to the charged price: the discount only counts for
	// featured deals.
	priceExpr := `IF\(featured_deal AND discounted_price IS NOT NULL, discounted_price, price_per_night\)`
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms r WHERE .+ ` + priceExpr + ` >= \? AND ` + priceExpr + ` <= \?`).
		WithArgs("Suite", "Deluxe", 50.0, 200.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT r\..+ FROM rooms r WHERE .+ IN \(\?,\?\) .+ ORDER BY ` + priceExpr + ` ASC, r\.id ASC LIMIT \? OFFSET \?`).
		WithArgs("Suite", "Deluxe", 50.0, 200.0, 10, 0).
		WillReturnRows(roomTestRows(6))

	rooms, total, err := repo.Search(context.Background(), RoomSearchQuery{
		RoomTypes: []string{"Suite", "Deluxe"},
		MinPrice:  50,
		MaxPrice:  200,
		Page:      1,
		PageSize:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, rooms, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
