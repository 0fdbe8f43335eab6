package repository

import (
	"context"
	"database/sql"
	"time"

	"hotelbooking/internal/model"
)

// BookingRepo provides persistence for bookings.  Creation and deletion run
// inside caller-owned transactions because they are coupled to the room
// lock, the availability check and the city visitor counter.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = "id,user_id,room_id,hotel_id,check_in_date,check_out_date,special_requests,total_price,created_at,updated_at"

// BookingDetail is a booking joined with the display fields the
// confirmation surfaces (email, document, detail endpoint) need.
type BookingDetail struct {
	Booking   model.Booking
	GuestName string
	Email     string
	HotelName string
	CityName  string
	RoomType  string
}

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
		&b.SpecialRequests, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// CreateTx inserts the booking within an open transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id,room_id,hotel_id,check_in_date,check_out_date,special_requests,total_price)
		 VALUES (?,?,?,?,?,?,?)`,
		b.UserID, b.RoomID, b.HotelID, b.CheckInDate, b.CheckOutDate, b.SpecialRequests, b.TotalPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
}

func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id))
}

// GetDetail loads the booking together with guest, hotel, city and room
// display fields.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (BookingDetail, error) {
	const q = `SELECT b.id,b.user_id,b.room_id,b.hotel_id,b.check_in_date,b.check_out_date,
			b.special_requests,b.total_price,b.created_at,b.updated_at,
			CONCAT(u.first_name,' ',u.last_name), u.email, h.name, c.name, r.room_type
		FROM bookings b
		JOIN users u  ON u.id = b.user_id
		JOIN hotels h ON h.id = b.hotel_id
		JOIN cities c ON c.id = h.city_id
		JOIN rooms r  ON r.id = b.room_id
		WHERE b.id = ? LIMIT 1`
	var d BookingDetail
	b := &d.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
		&b.SpecialRequests, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
		&d.GuestName, &d.Email, &d.HotelName, &d.CityName, &d.RoomType)
	return d, err
}

// ListByRoomTx returns all bookings of the room that end after `from`,
// inside an open transaction.  The booking workflow calls it after locking
// the room row, so the result is stable for the rest of the transaction.
func (r *BookingRepo) ListByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64, from time.Time) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE room_id=? AND check_out_date > ? ORDER BY check_in_date ASC",
		roomID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteTx removes the booking within an open transaction.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
