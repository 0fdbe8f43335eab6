package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

// PaymentHandler serves payment creation, lookup and status updates.  A
// payment is one-to-one with its booking and its amount is always copied
// from the booking total, never taken from the request.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Bookings *repository.BookingRepo
	Validate *validate.Validator
}

func NewPaymentHandler(payments *repository.PaymentRepo, bookings *repository.BookingRepo, v *validate.Validator) *PaymentHandler {
	if payments == nil || bookings == nil || v == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments, Bookings: bookings, Validate: v}
}

type paymentRequest struct {
	BookingID uint64 `json:"bookingId" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,payment_method"`
}

type paymentResponse struct {
	ID          uint64  `json:"id"`
	BookingID   uint64  `json:"bookingId"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	PaymentDate string  `json:"paymentDate"`
}

func toPaymentResponse(p model.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		Method:      p.Method,
		Status:      p.Status,
		PaymentDate: p.PaymentDate.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/payments.  Customers may only pay their own
// bookings; admins may pay any.
func (h *PaymentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body paymentRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	ctx := c.Request().Context()

	booking, err := h.Bookings.GetByID(ctx, body.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if !isAdmin(c) && booking.UserID != userID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	payment := model.Payment{
		BookingID: booking.ID,
		Amount:    booking.TotalPrice,
		Method:    body.Method,
		Status:    model.PaymentPending,
	}
	if err := h.Payments.Create(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return fail(c, http.StatusBadRequest, "booking already has a payment")
		}
		log.Error().Err(err).Msg("payment create failed")
		return fail(c, http.StatusInternalServerError, "could not create payment")
	}
	payment.PaymentDate = time.Now().UTC()
	return c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// Get handles GET /v1/payments/:id (admin or payer).
func (h *PaymentHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid payment id")
	}
	ctx := c.Request().Context()

	payment, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "payment not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if !isAdmin(c) {
		booking, err := h.Bookings.GetByID(ctx, payment.BookingID)
		if err != nil || booking.UserID != userID {
			return fail(c, http.StatusForbidden, "forbidden")
		}
	}
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

type paymentStatusRequest struct {
	Status string `json:"status" validate:"required,payment_status"`
}

// UpdateStatus handles PATCH /v1/payments/:id/status (admin).
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid payment id")
	}
	var body paymentStatusRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	ctx := c.Request().Context()

	if _, err := h.Payments.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "payment not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if err := h.Payments.UpdateStatus(ctx, id, body.Status); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update payment")
	}
	updated, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toPaymentResponse(updated))
}
