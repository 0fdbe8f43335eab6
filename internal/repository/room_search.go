package repository

import (
	"context"
	"strings"
	"time"

	"hotelbooking/internal/model"
)

// RoomSearchQuery carries the filters of the room availability search.
// CheckIn/CheckOut, when both set, restrict the results to rooms with no
// overlapping booking; the stay interval is half-open so back-to-back
// bookings do not collide.
type RoomSearchQuery struct {
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Children  int
	RoomTypes []string
	MinPrice  float64
	MaxPrice  float64
	Page      int
	PageSize  int
}

// Search runs a filtered, paginated room query and returns the matching
// page along with the total match count.
func (r *RoomRepo) Search(ctx context.Context, q RoomSearchQuery) ([]model.Room, int, error) {
	where := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if !q.CheckIn.IsZero() && !q.CheckOut.IsZero() {
		where = append(where, `NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND NOT (b.check_out_date <= ? OR b.check_in_date >= ?))`)
		args = append(args, q.CheckIn, q.CheckOut)
	}
	if q.Adults > 0 {
		where = append(where, "r.adult_capacity >= ?")
		args = append(args, q.Adults)
	}
	if q.Children > 0 {
		where = append(where, "r.child_capacity >= ?")
		args = append(args, q.Children)
	}
	if len(q.RoomTypes) > 0 {
		ph := make([]string, len(q.RoomTypes))
		for i, t := range q.RoomTypes {
			ph[i] = "?"
			args = append(args, t)
		}
		where = append(where, "r.room_type IN ("+strings.Join(ph, ",")+")")
	}
	if q.MinPrice > 0 {
		where = append(where, effectivePriceSQL+" >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, effectivePriceSQL+" <= ?")
		args = append(args, q.MaxPrice)
	}

	base := " FROM rooms r"
	if len(where) > 0 {
		base += " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	cols := strings.ReplaceAll(roomCols, ",", ",r.")
	sel := "SELECT r." + cols + base +
		" ORDER BY " + effectivePriceSQL + " ASC, r.id ASC LIMIT ? OFFSET ?"
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Room, 0, q.PageSize)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, room)
	}
	return out, total, rows.Err()
}
