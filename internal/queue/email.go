package queue

import "fmt"

// BookingEmailSubject is the subject line of the confirmation email.
func BookingEmailSubject(ev BookingConfirmedEvent) string {
	return fmt.Sprintf("Booking confirmation #%d - %s", ev.BookingID, ev.HotelName)
}

// BookingEmailBody renders the plain-text confirmation email for the event.
func BookingEmailBody(ev BookingConfirmedEvent) string {
	return fmt.Sprintf(`Dear %s,

Your booking is confirmed.

Confirmation number: %d
Hotel: %s, %s
Room type: %s
Check-in: %s
Check-out: %s
Total: %.2f

We look forward to your stay.
`, ev.GuestName, ev.BookingID, ev.HotelName, ev.CityName, ev.RoomType,
		ev.CheckInDate, ev.CheckOutDate, ev.TotalPrice)
}
