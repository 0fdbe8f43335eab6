package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"hotelbooking/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Image URL lists are stored
// as JSON in a text column.
type RoomRepo struct{ db *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomCols = "id,hotel_id,room_type,price_per_night,discounted_price,featured_deal,adult_capacity,child_capacity,image_urls,created_at,updated_at"

// effectivePriceSQL is the nightly price a guest is actually charged: the
// discounted price only applies while the room is a featured deal.
const effectivePriceSQL = "IF(featured_deal AND discounted_price IS NOT NULL, discounted_price, price_per_night)"

func marshalImageURLs(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var r model.Room
	var imgs string
	err := row.Scan(&r.ID, &r.HotelID, &r.RoomType, &r.PricePerNight, &r.DiscountedPrice,
		&r.FeaturedDeal, &r.AdultCapacity, &r.ChildCapacity, &imgs, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return model.Room{}, err
	}
	if imgs != "" {
		if err := json.Unmarshal([]byte(imgs), &r.ImageURLs); err != nil {
			return model.Room{}, err
		}
	}
	if r.ImageURLs == nil {
		r.ImageURLs = []string{}
	}
	return r, nil
}

func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	imgs, err := marshalImageURLs(room.ImageURLs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (hotel_id,room_type,price_per_night,discounted_price,featured_deal,adult_capacity,child_capacity,image_urls)
		 VALUES (?,?,?,?,?,?,?,?)`,
		room.HotelID, room.RoomType, room.PricePerNight, room.DiscountedPrice,
		room.FeaturedDeal, room.AdultCapacity, room.ChildCapacity, imgs)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1", id))
}

// GetByIDForUpdateTx loads the room inside an open transaction and takes a
// row lock, serializing concurrent bookings of the same room.
func (r *RoomRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	return scanRoom(tx.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1 FOR UPDATE", id))
}

func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	imgs, err := marshalImageURLs(room.ImageURLs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE rooms SET room_type=?, price_per_night=?, discounted_price=?, featured_deal=?, adult_capacity=?, child_capacity=?, image_urls=?
		 WHERE id=?`,
		room.RoomType, room.PricePerNight, room.DiscountedPrice, room.FeaturedDeal,
		room.AdultCapacity, room.ChildCapacity, imgs, room.ID)
	return err
}

func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByHotel returns every room of a hotel, cheapest effective price
// first.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE hotel_id=? ORDER BY "+effectivePriceSQL+" ASC, id ASC", hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}
