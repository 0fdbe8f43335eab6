package repository

import (
	"context"
	"strings"

	"hotelbooking/internal/model"
)

// HotelSearchQuery carries the optional filters of the hotel search
// endpoint.  Zero values mean "not filtered".
type HotelSearchQuery struct {
	Query     string   // substring match on hotel name or city name
	MinRating int      // inclusive lower bound on star rating
	MaxRating int      // inclusive upper bound on star rating
	Amenities []string // hotel must carry every listed amenity
	HotelType string   // exact hotel type
	Page      int
	PageSize  int
}

// Search runs a filtered, paginated hotel query and returns the matching
// page along with the total match count.
func (r *HotelRepo) Search(ctx context.Context, q HotelSearchQuery) ([]model.Hotel, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if q.Query != "" {
		where = append(where, "(h.name LIKE ? OR c.name LIKE ?)")
		pat := "%" + q.Query + "%"
		args = append(args, pat, pat)
	}
	if q.MinRating > 0 {
		where = append(where, "h.star_rating >= ?")
		args = append(args, q.MinRating)
	}
	if q.MaxRating > 0 {
		where = append(where, "h.star_rating <= ?")
		args = append(args, q.MaxRating)
	}
	if q.HotelType != "" {
		where = append(where, "h.hotel_type = ?")
		args = append(args, q.HotelType)
	}
	for _, a := range q.Amenities {
		where = append(where, "FIND_IN_SET(?, h.amenities) > 0")
		args = append(args, a)
	}

	base := " FROM hotels h JOIN cities c ON c.id = h.city_id"
	if len(where) > 0 {
		base += " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	cols := strings.ReplaceAll(hotelCols, ",", ",h.")
	sel := "SELECT h." + cols + base + " ORDER BY h.star_rating DESC, h.id ASC LIMIT ? OFFSET ?"
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0, q.PageSize)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}
