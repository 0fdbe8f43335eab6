package model

import "time"

// Payment is one-to-one with a booking (unique key on booking_id).  A
// booking with a payment attached cannot be cancelled until the payment is
// handled.
//
// Fields:
//  ID          - primary key identifier.
//  BookingID   - booking this payment settles (unique).
//  Amount      - amount charged, copied from the booking total.
//  Method      - one of the PaymentMethods values.
//  Status      - one of the PaymentStatuses values, starts at Pending.
//  PaymentDate - when the payment was recorded.
type Payment struct {
	ID          uint64    // payments.id
	BookingID   uint64    // payments.booking_id
	Amount      float64   // payments.amount
	Method      string    // payments.method
	Status      string    // payments.status
	PaymentDate time.Time // payments.payment_date
}
