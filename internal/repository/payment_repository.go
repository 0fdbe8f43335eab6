package repository

import (
	"context"
	"database/sql"
	"strings"

	"hotelbooking/internal/model"
)

// PaymentRepo provides persistence for payments.  The table has a unique
// key on booking_id, enforcing one payment per booking.
type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = "id,booking_id,amount,method,status,payment_date"

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &p.PaymentDate)
	return p, err
}

func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO payments (booking_id,amount,method,status) VALUES (?,?,?,?)",
		p.BookingID, p.Amount, p.Method, p.Status)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrPaymentExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx,
		"SELECT "+paymentCols+" FROM payments WHERE id=? LIMIT 1", id))
}

// GetByBookingIDTx checks for a payment attached to the booking inside an
// open transaction; the cancellation workflow uses it as its guard.
func (r *PaymentRepo) GetByBookingIDTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (model.Payment, error) {
	return scanPayment(tx.QueryRowContext(ctx,
		"SELECT "+paymentCols+" FROM payments WHERE booking_id=? LIMIT 1", bookingID))
}

func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE payments SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM payments WHERE id=? LIMIT 1", id).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}
