package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
)

func sampleDetail() repository.BookingDetail {
	ci, _ := time.Parse("2006-01-02", "2026-09-10")
	return repository.BookingDetail{
		Booking: model.Booking{
			ID:           42,
			UserID:       7,
			CheckInDate:  ci,
			CheckOutDate: ci.AddDate(0, 0, 3),
			TotalPrice:   240,
			CreatedAt:    time.Now(),
		},
		GuestName: "Dana Reyes",
		Email:     "dana@example.com",
		HotelName: "Harbor View",
		CityName:  "Lisbon",
		RoomType:  "Double",
	}
}

func TestBookingConfirmationProducesPDF(t *testing.T) {
	doc, err := BookingConfirmation(sampleDetail())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestBookingConfirmationWithSpecialRequests(t *testing.T) {
	d := sampleDetail()
	d.Booking.SpecialRequests = "Late check-in, ground floor if possible"
	doc, err := BookingConfirmation(d)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
