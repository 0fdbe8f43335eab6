package model

import "time"

// Booking records a user's stay in a room.  The hotel reference is
// denormalized from the room at creation time.  Check-in/check-out form a
// half-open interval [CheckInDate, CheckOutDate): a checkout on day X and a
// new check-in on day X do not conflict.
//
// Fields:
//  ID              - primary key identifier.
//  UserID          - user who made the booking.
//  RoomID          - room being booked.
//  HotelID         - hotel the room belongs to (denormalized).
//  CheckInDate     - first night of the stay (DATE).
//  CheckOutDate    - day of departure (DATE, exclusive).
//  SpecialRequests - optional free-text requests (<= 500 chars).
//  TotalPrice      - nights x effective nightly price, computed at creation.
//  CreatedAt       - creation timestamp.
//  UpdatedAt       - last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	UserID          uint64    // bookings.user_id
	RoomID          uint64    // bookings.room_id
	HotelID         uint64    // bookings.hotel_id
	CheckInDate     time.Time // bookings.check_in_date
	CheckOutDate    time.Time // bookings.check_out_date
	SpecialRequests string    // bookings.special_requests
	TotalPrice      float64   // bookings.total_price
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}
