package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/model"
)

func TestPaymentCreateDuplicateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '42' for key 'uq_payments_booking'"))

	err = repo.Create(context.Background(), &model.Payment{BookingID: 42, Amount: 300, Method: "CreditCard", Status: "Pending"})
	assert.ErrorIs(t, err, ErrPaymentExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreateSetsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepo(db)

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(uint64(42), 300.0, "CreditCard", "Pending").
		WillReturnResult(sqlmock.NewResult(11, 1))

	p := model.Payment{BookingID: 42, Amount: 300, Method: "CreditCard", Status: "Pending"}
	require.NoError(t, repo.Create(context.Background(), &p))
	assert.Equal(t, uint64(11), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'dup@example.com' for key 'uq_users_email'"))

	u := model.User{FirstName: "Dana", LastName: "Reyes", Email: "Dup@Example.com", Role: model.RoleCustomer}
	err = repo.Create(context.Background(), &u, "longenough")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, "dup@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
