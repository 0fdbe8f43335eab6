package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/observability"
	"hotelbooking/internal/pdf"
	"hotelbooking/internal/queue"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/service"
	"hotelbooking/internal/validate"
)

// BookingHandler implements the booking workflow.  Creation locks the room
// row, checks availability against existing bookings, prices the stay and
// bumps the city visitor counter, all inside one transaction; the
// confirmation event is published after commit and its failure is never
// surfaced to the caller.
type BookingHandler struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
	Cities   *repository.CityRepo
	Payments *repository.PaymentRepo
	Users    *repository.UserRepo
	Validate *validate.Validator
}

func NewBookingHandler(db *sql.DB, bookings *repository.BookingRepo, rooms *repository.RoomRepo, hotels *repository.HotelRepo, cities *repository.CityRepo, payments *repository.PaymentRepo, users *repository.UserRepo, v *validate.Validator) *BookingHandler {
	if db == nil || bookings == nil || rooms == nil || hotels == nil || cities == nil || payments == nil || users == nil || v == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{DB: db, Bookings: bookings, Rooms: rooms, Hotels: hotels, Cities: cities, Payments: payments, Users: users, Validate: v}
}

// Nights counts billable nights in the half-open stay [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// EffectiveNightlyPrice is the price actually charged per night: the
// discounted price when the room is a featured deal and a discount is set,
// the regular price otherwise.
func EffectiveNightlyPrice(r model.Room) float64 {
	if r.FeaturedDeal && r.DiscountedPrice != nil {
		return *r.DiscountedPrice
	}
	return r.PricePerNight
}

// StayPrice prices a stay: nights times the effective nightly price.
func StayPrice(r model.Room, checkIn, checkOut time.Time) float64 {
	return float64(Nights(checkIn, checkOut)) * EffectiveNightlyPrice(r)
}

// Overlaps reports whether [checkIn, checkOut) collides with the booking.
// Intervals are half-open, so a checkout and a same-day check-in coexist.
func Overlaps(b model.Booking, checkIn, checkOut time.Time) bool {
	return b.CheckOutDate.After(checkIn) && b.CheckInDate.Before(checkOut)
}

// RoomAvailable reports whether none of the existing bookings collide with
// the requested stay.
func RoomAvailable(existing []model.Booking, checkIn, checkOut time.Time) bool {
	for _, b := range existing {
		if Overlaps(b, checkIn, checkOut) {
			return false
		}
	}
	return true
}

type bookingRequest struct {
	RoomID          uint64 `json:"roomId" validate:"required,gt=0"`
	CheckInDate     string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

type bookingResponse struct {
	ID              uint64  `json:"id"`
	UserID          uint64  `json:"userId"`
	GuestName       string  `json:"guestName,omitempty"`
	RoomID          uint64  `json:"roomId"`
	RoomType        string  `json:"roomType,omitempty"`
	HotelID         uint64  `json:"hotelId"`
	HotelName       string  `json:"hotelName,omitempty"`
	CityName        string  `json:"cityName,omitempty"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedAt       string  `json:"createdAt"`
}

func toBookingResponse(d repository.BookingDetail) bookingResponse {
	b := d.Booking
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		GuestName:       d.GuestName,
		RoomID:          b.RoomID,
		RoomType:        d.RoomType,
		HotelID:         b.HotelID,
		HotelName:       d.HotelName,
		CityName:        d.CityName,
		CheckInDate:     b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:    b.CheckOutDate.Format("2006-01-02"),
		SpecialRequests: b.SpecialRequests,
		TotalPrice:      b.TotalPrice,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/bookings (customer).
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	checkIn, err := time.Parse("2006-01-02", body.CheckInDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "checkInDate must be YYYY-MM-DD")
	}
	checkOut, err := time.Parse("2006-01-02", body.CheckOutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "checkOutDate must be YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return fail(c, http.StatusBadRequest, "checkOutDate must be after checkInDate")
	}
	if verrs := h.Validate.Var(checkIn, "future_date"); verrs != nil {
		return fail(c, http.StatusBadRequest, "checkInDate cannot be in the past")
	}
	ctx := c.Request().Context()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "unauthorized")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Row lock on the room serializes competing requests for the same
	// dates; the availability snapshot below stays valid until commit.
	room, err := h.Rooms.GetByIDForUpdateTx(ctx, tx, body.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "room not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	hotel, err := h.Hotels.GetByIDTx(ctx, tx, room.HotelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "hotel not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	existing, err := h.Bookings.ListByRoomTx(ctx, tx, room.ID, checkIn)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if !RoomAvailable(existing, checkIn, checkOut) {
		return fail(c, http.StatusBadRequest, "Room is already booked for the specified dates")
	}

	booking := model.Booking{
		UserID:          userID,
		RoomID:          room.ID,
		HotelID:         hotel.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		SpecialRequests: body.SpecialRequests,
		TotalPrice:      StayPrice(room, checkIn, checkOut),
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		log.Error().Err(err).Msg("booking insert failed")
		return fail(c, http.StatusInternalServerError, "could not create booking")
	}

	updated, err := h.Cities.AddVisitorsTx(ctx, tx, hotel.CityID, 1)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not update city visitors")
	}
	if !updated {
		// A vanished city must not block the booking; the counter is a
		// best-effort aggregate.
		log.Warn().Uint64("city_id", hotel.CityID).Uint64("hotel_id", hotel.ID).Msg("visitor counter skipped, city missing")
	}

	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true
	observability.BookingsCreated.Inc()

	detail := repository.BookingDetail{
		Booking:   booking,
		GuestName: user.FirstName + " " + user.LastName,
		Email:     user.Email,
		HotelName: hotel.Name,
		RoomType:  room.RoomType,
	}
	if city, err := h.Cities.GetByID(ctx, hotel.CityID); err == nil {
		detail.CityName = city.Name
	}
	detail.Booking.CreatedAt = time.Now().UTC()

	go func(d repository.BookingDetail) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = service.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:    d.Booking.ID,
			UserID:       d.Booking.UserID,
			GuestName:    d.GuestName,
			Email:        d.Email,
			HotelName:    d.HotelName,
			CityName:     d.CityName,
			RoomType:     d.RoomType,
			CheckInDate:  d.Booking.CheckInDate.Format("2006-01-02"),
			CheckOutDate: d.Booking.CheckOutDate.Format("2006-01-02"),
			TotalPrice:   d.Booking.TotalPrice,
			ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}(detail)

	return c.JSON(http.StatusCreated, toBookingResponse(detail))
}

// loadAuthorized resolves :id and enforces admin-or-owner access.
func (h *BookingHandler) loadAuthorized(c echo.Context) (model.Booking, error) {
	userID, err := getUserID(c)
	if err != nil {
		return model.Booking{}, fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseID(c, "id")
	if !ok {
		return model.Booking{}, fail(c, http.StatusBadRequest, "invalid booking id")
	}
	booking, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, fail(c, http.StatusNotFound, "booking not found")
		}
		return model.Booking{}, fail(c, http.StatusInternalServerError, "database error")
	}
	if !isAdmin(c) && booking.UserID != userID {
		return model.Booking{}, fail(c, http.StatusForbidden, "forbidden")
	}
	return booking, nil
}

// Get handles GET /v1/bookings/:id (admin or owner).
func (h *BookingHandler) Get(c echo.Context) error {
	booking, werr := h.loadAuthorized(c)
	if werr != nil {
		return werr
	}
	detail, err := h.Bookings.GetDetail(c.Request().Context(), booking.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toBookingResponse(detail))
}

// Delete handles DELETE /v1/bookings/:id (admin or owner).  A booking with
// a payment attached cannot be cancelled.
func (h *BookingHandler) Delete(c echo.Context) error {
	booking, werr := h.loadAuthorized(c)
	if werr != nil {
		return werr
	}
	ctx := c.Request().Context()

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Payments.GetByBookingIDTx(ctx, tx, booking.ID); err == nil {
		return fail(c, http.StatusBadRequest, "Cannot delete booking with an associated payment.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fail(c, http.StatusInternalServerError, "database error")
	}

	hotel, err := h.Hotels.GetByIDTx(ctx, tx, booking.HotelID)
	if err == nil {
		updated, verr := h.Cities.AddVisitorsTx(ctx, tx, hotel.CityID, -1)
		if verr != nil {
			return fail(c, http.StatusInternalServerError, "could not update city visitors")
		}
		if !updated {
			log.Warn().Uint64("city_id", hotel.CityID).Msg("visitor counter skipped, city missing")
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fail(c, http.StatusInternalServerError, "database error")
	}

	if err := h.Bookings.DeleteTx(ctx, tx, booking.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "could not delete booking")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true
	observability.BookingsCancelled.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Document handles GET /v1/bookings/:id/document (admin or owner) and
// returns the confirmation as application/pdf.
func (h *BookingHandler) Document(c echo.Context) error {
	booking, werr := h.loadAuthorized(c)
	if werr != nil {
		return werr
	}
	detail, err := h.Bookings.GetDetail(c.Request().Context(), booking.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	doc, err := pdf.BookingConfirmation(detail)
	if err != nil {
		log.Error().Err(err).Uint64("booking_id", booking.ID).Msg("pdf render failed")
		return fail(c, http.StatusInternalServerError, "could not render document")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="booking-confirmation.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
