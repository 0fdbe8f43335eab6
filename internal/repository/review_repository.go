package repository

import (
	"context"
	"database/sql"

	"hotelbooking/internal/model"
)

// ReviewRepo provides persistence for guest reviews.  Mutations run inside
// caller-owned transactions because they are coupled to the hotel's derived
// star rating.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = "id,user_id,hotel_id,rating,comment,created_at"

func scanReview(row interface{ Scan(...any) error }) (model.GuestReview, error) {
	var g model.GuestReview
	err := row.Scan(&g.ID, &g.UserID, &g.HotelID, &g.Rating, &g.Comment, &g.CreatedAt)
	return g, err
}

func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, g *model.GuestReview) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO guest_reviews (user_id,hotel_id,rating,comment) VALUES (?,?,?,?)",
		g.UserID, g.HotelID, g.Rating, g.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.GuestReview, error) {
	return scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM guest_reviews WHERE id=? LIMIT 1", id))
}

func (r *ReviewRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM guest_reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RatingsForHotelTx returns every rating of the hotel inside an open
// transaction, for recomputing the derived star rating after a mutation.
func (r *ReviewRepo) RatingsForHotelTx(ctx context.Context, tx *sql.Tx, hotelID uint64) ([]int, error) {
	rows, err := tx.QueryContext(ctx, "SELECT rating FROM guest_reviews WHERE hotel_id=?", hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]int, 0)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
