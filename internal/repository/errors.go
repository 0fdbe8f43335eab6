// Package repository implements the data access layer over MySQL.  This
// file defines sentinel errors reused across repositories so handlers can
// map failure kinds onto HTTP statuses without string matching.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken.  Handlers translate this into a 400 business-rule response.
var ErrEmailExists = errors.New("email already in use")

// ErrPaymentExists is returned when creating a second payment for a booking
// that already has one (payments.booking_id is unique).
var ErrPaymentExists = errors.New("payment already exists for booking")
