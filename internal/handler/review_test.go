package handler

import (
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
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

func newReviewHandler(t *testing.T) (*ReviewHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReviewHandler(db, repository.NewReviewRepo(db), repository.NewHotelRepo(db), validate.New()), mock
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT 1 FROM hotels WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO guest_reviews").
		WithArgs(uint64(7), uint64(9), 5, "Great stay").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT rating FROM guest_reviews WHERE hotel_id=").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(4))
	// round(13/3) = 4
	mock.ExpectExec("UPDATE hotels SET star_rating=").
		WithArgs(4, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/hotels/9/reviews",
		strings.NewReader(`{"rating":5,"comment":"Great stay"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/hotels/:id/reviews")
	c.SetParamNames("id")
	c.SetParamValues("9")
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleCustomer)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewWrongHotelRejected(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT .+ FROM guest_reviews WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hotel_id", "rating", "comment", "created_at"}).
			AddRow(3, 7, 11, 5, "", time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/hotels/9/reviews/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/hotels/:id/reviews/:reviewId")
	c.SetParamNames("id", "reviewId")
	c.SetParamValues("9", "3")
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleCustomer)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not belong")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewOtherAuthorForbidden(t *testing.T) {
	h, mock := newReviewHandler(t)

	mock.ExpectQuery("SELECT .+ FROM guest_reviews WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hotel_id", "rating", "comment", "created_at"}).
			AddRow(3, 99, 9, 5, "", time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/hotels/9/reviews/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/hotels/:id/reviews/:reviewId")
	c.SetParamNames("id", "reviewId")
	c.SetParamValues("9", "3")
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleCustomer)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
