package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleEvent() BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:    42,
		UserID:       7,
		GuestName:    "Dana Reyes",
		Email:        "dana@example.com",
		HotelName:    "Harbor View",
		CityName:     "Lisbon",
		RoomType:     "Double",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-13",
		TotalPrice:   240,
		ConfirmedAt:  "2026-08-30T10:00:00Z",
	}
}

func TestBookingEmailSubject(t *testing.T) {
	assert.Equal(t, "Booking confirmation #42 - Harbor View", BookingEmailSubject(sampleEvent()))
}

func TestBookingEmailBody(t *testing.T) {
	body := BookingEmailBody(sampleEvent())
	assert.Contains(t, body, "Dear Dana Reyes")
	assert.Contains(t, body, "Confirmation number: 42")
	assert.Contains(t, body, "Harbor View, Lisbon")
	assert.Contains(t, body, "Check-in: 2026-09-10")
	assert.Contains(t, body, "Check-out: 2026-09-13")
	assert.Contains(t, body, "Total: 240.00")
}
