// Package pdf renders booking confirmation documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hotelbooking/internal/repository"
)

// BookingConfirmation renders the booking confirmation as a single-page
// PDF and returns the document bytes.
func BookingConfirmation(d repository.BookingDetail) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Booking confirmation #%d", d.Booking.ID), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 12, "Booking Confirmation")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("Confirmation number: %d", d.Booking.ID))
	doc.Ln(10)

	rows := [][2]string{
		{"Guest", d.GuestName},
		{"Email", d.Email},
		{"Hotel", d.HotelName},
		{"City", d.CityName},
		{"Room type", d.RoomType},
		{"Check-in", d.Booking.CheckInDate.Format("2006-01-02")},
		{"Check-out", d.Booking.CheckOutDate.Format("2006-01-02")},
		{"Total price", fmt.Sprintf("%.2f", d.Booking.TotalPrice)},
	}
	if d.Booking.SpecialRequests != "" {
		rows = append(rows, [2]string{"Special requests", d.Booking.SpecialRequests})
	}

	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 8, row[1], "", "L", false)
	}

	doc.Ln(6)
	doc.SetFont("Helvetica", "I", 10)
	doc.Cell(0, 8, fmt.Sprintf("Booked on %s", d.Booking.CreatedAt.Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
