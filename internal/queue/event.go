// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into guest notifications.
package queue

// BookingConfirmedEvent is published when a booking is successfully created.
// It carries enough display data for downstream consumers to notify the
// guest without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	GuestName    string  `json:"guest_name"`
	Email        string  `json:"email"`
	HotelName    string  `json:"hotel_name"`
	CityName     string  `json:"city_name"`
	RoomType     string  `json:"room_type"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
