package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/model"
)

func roomRow(id, hotelID uint64, price float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "hotel_id", "room_type", "price_per_night", "discounted_price", "featured_deal",
		"adult_capacity", "child_capacity", "image_urls", "created_at", "updated_at",
	}).AddRow(id, hotelID, "Double", price, nil, false, 2, 1, "[]", now, now)
}

func createBookingContext(t *testing.T, userID uint64, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", model.RoleCustomer)
	return c, rec
}

func futureStay(t *testing.T) (string, string) {
	t.Helper()
	ci := time.Now().UTC().AddDate(0, 0, 14)
	return ci.Format("2006-01-02"), ci.AddDate(0, 0, 3).Format("2006-01-02")
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	h, mock := newBookingHandler(t)
	checkIn, checkOut := futureStay(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id=").
		WillReturnRows(userRow(t, 7, "dana@example.com", "pw-irrelevant"))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM rooms WHERE id=.+ FOR UPDATE").
		WillReturnRows(roomRow(3, 9, 100))
	mock.ExpectQuery("SELECT .+ FROM hotels WHERE id=").
		WillReturnRows(hotelRow(9, 4))
	// An existing stay covering the requested dates.
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE room_id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "hotel_id", "check_in_date", "check_out_date",
			"special_requests", "total_price", "created_at", "updated_at",
		}).AddRow(41, 8, 3, 9, now.AddDate(0, 0, 13), now.AddDate(0, 0, 18), "", 500.0, now, now))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{"roomId":3,"checkInDate":%q,"checkOutDate":%q}`, checkIn, checkOut)
	c, rec := createBookingContext(t, 7, body)
	require.NoError(t, h.Create(c))

	// Rejected before any insert; nothing was persisted.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room is already booked for the specified dates")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPricesAndIncrementsVisitors(t *testing.T) {
	h, mock := newBookingHandler(t)
	checkIn, checkOut := futureStay(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id=").
		WillReturnRows(userRow(t, 7, "dana@example.com", "pw-irrelevant"))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM rooms WHERE id=.+ FOR UPDATE").
		WillReturnRows(roomRow(3, 9, 100))
	mock.ExpectQuery("SELECT .+ FROM hotels WHERE id=").
		WillReturnRows(hotelRow(9, 4))
	mock.ExpectQuery("SELECT .+ FROM bookings WHERE room_id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "hotel_id", "check_in_date", "check_out_date",
			"special_requests", "total_price", "created_at", "updated_at",
		}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("UPDATE cities SET visitors = visitors \\+ \\?").
		WithArgs(1, uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// Post-commit city lookup for the confirmation payload.
	mock.ExpectQuery("SELECT .+ FROM cities WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "country", "post_office", "thumbnail_url", "visitors", "created_at", "updated_at",
		}).AddRow(4, "Lisbon", "Portugal", "", "", 12, time.Now(), time.Now()))

	body := fmt.Sprintf(`{"roomId":3,"checkInDate":%q,"checkOutDate":%q}`, checkIn, checkOut)
	c, rec := createBookingContext(t, 7, body)
	require.NoError(t, h.Create(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// 3 nights at the regular rate of 100.
	assert.Equal(t, 300.0, resp["totalPrice"])
	assert.Equal(t, float64(55), resp["id"])
	assert.Equal(t, "Harbor View", resp["hotelName"])
	assert.Equal(t, "Lisbon", resp["cityName"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPastCheckInRejected(t *testing.T) {
	h, _ := newBookingHandler(t)
	c, rec := createBookingContext(t, 7,
		`{"roomId":3,"checkInDate":"2020-01-01","checkOutDate":"2020-01-03"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingInvertedDatesRejected(t *testing.T) {
	h, _ := newBookingHandler(t)
	checkIn, _ := futureStay(t)
	body := fmt.Sprintf(`{"roomId":3,"checkInDate":%q,"checkOutDate":%q}`, checkIn, checkIn)
	c, rec := createBookingContext(t, 7, body)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "after")
}
