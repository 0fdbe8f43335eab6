package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

func newHotelHandler(t *testing.T) (*HotelHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewHotelHandler(repository.NewHotelRepo(db), repository.NewCityRepo(db), validate.New()), mock
}

func getHotelContext(target, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetPath("/v1/hotels/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestHotelGetPlain(t *testing.T) {
	h, mock := newHotelHandler(t)
	mock.ExpectQuery("SELECT .+ FROM hotels WHERE id=").
		WithArgs(uint64(4)).
		WillReturnRows(hotelRow(4, 2))

	c, rec := getHotelContext("/v1/hotels/4", "4")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Harbor View")
	// Reviews are only embedded on request.
	assert.NotContains(t, rec.Body.String(), "reviews")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelGetWithReviews(t *testing.T) {
	h, mock := newHotelHandler(t)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM hotels WHERE id=").
		WithArgs(uint64(4)).
		WillReturnRows(hotelRow(4, 2))
	mock.ExpectQuery("SELECT .+ FROM guest_reviews WHERE hotel_id=").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hotel_id", "rating", "comment", "created_at"}).
			AddRow(11, 7, 4, 5, "Great stay", now))

	c, rec := getHotelContext("/v1/hotels/4?withReviews=true", "4")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reviews"`)
	assert.Contains(t, rec.Body.String(), "Great stay")
	assert.NoError(t, mock.ExpectationsWereMet())
}
