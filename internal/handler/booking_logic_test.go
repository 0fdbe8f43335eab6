package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbooking/internal/model"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func booking(checkIn, checkOut string) model.Booking {
	return model.Booking{CheckInDate: date(checkIn), CheckOutDate: date(checkOut)}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 1, Nights(date("2026-03-10"), date("2026-03-11")))
	assert.Equal(t, 3, Nights(date("2026-03-10"), date("2026-03-13")))
	assert.Equal(t, 0, Nights(date("2026-03-10"), date("2026-03-10")))
}

func TestOverlapsHalfOpen(t *testing.T) {
	existing := booking("2026-03-10", "2026-03-13")

	tests := []struct {
		name               string
		checkIn, checkOut  string
		want               bool
	}{
		{"identical interval", "2026-03-10", "2026-03-13", true},
		{"contained", "2026-03-11", "2026-03-12", true},
		{"overlaps start", "2026-03-08", "2026-03-11", true},
		{"overlaps end", "2026-03-12", "2026-03-15", true},
		{"surrounds", "2026-03-08", "2026-03-15", true},
		{"checkout on existing checkin day", "2026-03-08", "2026-03-10", false},
		{"checkin on existing checkout day", "2026-03-13", "2026-03-16", false},
		{"entirely before", "2026-03-01", "2026-03-05", false},
		{"entirely after", "2026-03-20", "2026-03-22", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(existing, date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

func TestRoomAvailable(t *testing.T) {
	existing := []model.Booking{
		booking("2026-03-10", "2026-03-13"),
		booking("2026-03-20", "2026-03-22"),
	}
	assert.True(t, RoomAvailable(existing, date("2026-03-13"), date("2026-03-20")))
	assert.False(t, RoomAvailable(existing, date("2026-03-12"), date("2026-03-14")))
	assert.True(t, RoomAvailable(nil, date("2026-03-01"), date("2026-03-31")))
}

func TestEffectiveNightlyPrice(t *testing.T) {
	deal := 80.0
	tests := []struct {
		name string
		room model.Room
		want float64
	}{
		{"regular room", model.Room{PricePerNight: 100}, 100},
		{"featured with discount", model.Room{PricePerNight: 100, FeaturedDeal: true, DiscountedPrice: &deal}, 80},
		{"featured without discount", model.Room{PricePerNight: 100, FeaturedDeal: true}, 100},
		{"discount set but not featured", model.Room{PricePerNight: 100, DiscountedPrice: &deal}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveNightlyPrice(tt.room))
		})
	}
}

func TestStayPrice(t *testing.T) {
	deal := 80.0
	room := model.Room{PricePerNight: 100, FeaturedDeal: true, DiscountedPrice: &deal}
	// 3 nights at the discounted rate.
	assert.Equal(t, 240.0, StayPrice(room, date("2026-03-10"), date("2026-03-13")))

	room.FeaturedDeal = false
	assert.Equal(t, 300.0, StayPrice(room, date("2026-03-10"), date("2026-03-13")))
}

func TestStarRating(t *testing.T) {
	assert.Equal(t, 0, StarRating(nil))
	assert.Equal(t, 5, StarRating([]int{5}))
	assert.Equal(t, 4, StarRating([]int{5, 3}))     // 4.0
	assert.Equal(t, 4, StarRating([]int{4, 4, 3}))  // 3.67 rounds up
	assert.Equal(t, 3, StarRating([]int{4, 3, 3}))  // 3.33 rounds down
	assert.Equal(t, 3, StarRating([]int{2, 3}))     // 2.5 rounds half away from zero
}

func TestNewPage(t *testing.T) {
	p := NewPage(12, 1, 10, []int{1, 2})
	assert.Equal(t, 12, p.TotalResults)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.PageSize)

	assert.Equal(t, 0, NewPage(0, 1, 10, nil).TotalPages)
	assert.Equal(t, 1, NewPage(10, 1, 10, nil).TotalPages)
	assert.Equal(t, 2, NewPage(11, 2, 10, nil).TotalPages)
}
