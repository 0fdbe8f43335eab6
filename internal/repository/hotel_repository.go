package repository

import (
	"context"
	"database/sql"
	"strings"

	"hotelbooking/internal/model"
)

// HotelRepo provides CRUD operations for hotels plus the derived-data
// queries used by the browse endpoints (featured deals, recent stays) and
// the star-rating maintenance run by the review workflow.
type HotelRepo struct{ db *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelCols = "id,name,owner,address,hotel_type,city_id,star_rating,description,thumbnail_url,amenities,created_at,updated_at"

// Amenity sets are persisted as a comma separated string; order is not
// meaningful.
func joinAmenities(a []string) string { return strings.Join(a, ",") }

func splitAmenities(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func scanHotel(row interface{ Scan(...any) error }) (model.Hotel, error) {
	var h model.Hotel
	var amenities string
	err := row.Scan(&h.ID, &h.Name, &h.Owner, &h.Address, &h.HotelType, &h.CityID,
		&h.StarRating, &h.Description, &h.ThumbnailURL, &amenities, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return model.Hotel{}, err
	}
	h.Amenities = splitAmenities(amenities)
	return h, nil
}

func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (name,owner,address,hotel_type,city_id,description,thumbnail_url,amenities)
		 VALUES (?,?,?,?,?,?,?,?)`,
		h.Name, h.Owner, h.Address, h.HotelType, h.CityID, h.Description,
		h.ThumbnailURL, joinAmenities(h.Amenities))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	return scanHotel(r.db.QueryRowContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE id=? LIMIT 1", id))
}

// GetByIDTx is GetByID inside an open transaction; the booking workflow
// resolves the room's hotel through it.
func (r *HotelRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Hotel, error) {
	return scanHotel(tx.QueryRowContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE id=? LIMIT 1", id))
}

// GetByIDWithReviews returns the hotel and all of its guest reviews, newest
// first.
func (r *HotelRepo) GetByIDWithReviews(ctx context.Context, id uint64) (model.Hotel, []model.GuestReview, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Hotel{}, nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,user_id,hotel_id,rating,comment,created_at FROM guest_reviews WHERE hotel_id=? ORDER BY created_at DESC, id DESC", id)
	if err != nil {
		return model.Hotel{}, nil, err
	}
	defer rows.Close()
	reviews := make([]model.GuestReview, 0)
	for rows.Next() {
		var g model.GuestReview
		if err := rows.Scan(&g.ID, &g.UserID, &g.HotelID, &g.Rating, &g.Comment, &g.CreatedAt); err != nil {
			return model.Hotel{}, nil, err
		}
		reviews = append(reviews, g)
	}
	if err := rows.Err(); err != nil {
		return model.Hotel{}, nil, err
	}
	return h, reviews, nil
}

// Update rewrites the caller-editable columns.  StarRating is derived and
// only changes through UpdateStarRatingTx.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name=?, owner=?, address=?, hotel_type=?, city_id=?, description=?, thumbnail_url=?, amenities=?
		 WHERE id=?`,
		h.Name, h.Owner, h.Address, h.HotelType, h.CityID, h.Description,
		h.ThumbnailURL, joinAmenities(h.Amenities), h.ID)
	return err
}

func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *HotelRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM hotels WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStarRatingTx writes the recomputed derived rating within the review
// mutation's transaction.
func (r *HotelRepo) UpdateStarRatingTx(ctx context.Context, tx *sql.Tx, hotelID uint64, rating int) error {
	_, err := tx.ExecContext(ctx, "UPDATE hotels SET star_rating=? WHERE id=?", rating, hotelID)
	return err
}

// ListFeaturedDeals returns hotels that have at least one featured-deal
// room, ordered by the cheapest discounted price on offer.
func (r *HotelRepo) ListFeaturedDeals(ctx context.Context, limit int) ([]model.Hotel, error) {
	const q = `SELECT ` + hotelCols + `
		FROM hotels h
		WHERE EXISTS (SELECT 1 FROM rooms r WHERE r.hotel_id = h.id AND r.featured_deal = 1)
		ORDER BY (SELECT MIN(COALESCE(r.discounted_price, r.price_per_night))
		          FROM rooms r WHERE r.hotel_id = h.id AND r.featured_deal = 1) ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0, limit)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListRecentForUser returns hotels the user has stayed at (checkout in the
// past), most recent checkout first.
func (r *HotelRepo) ListRecentForUser(ctx context.Context, userID uint64, limit int) ([]model.Hotel, error) {
	const q = `SELECT ` + hotelCols + `
		FROM hotels h
		WHERE EXISTS (SELECT 1 FROM bookings b
		              WHERE b.hotel_id = h.id AND b.user_id = ? AND b.check_out_date < CURDATE())
		ORDER BY (SELECT MAX(b.check_out_date) FROM bookings b
		          WHERE b.hotel_id = h.id AND b.user_id = ?) DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0, limit)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
