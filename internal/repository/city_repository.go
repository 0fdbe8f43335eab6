package repository

import (
	"context"
	"database/sql"

	"hotelbooking/internal/model"
)

// CityRepo provides CRUD operations for cities plus the visitor counter
// updates driven by the booking workflow.
type CityRepo struct{ db *sql.DB }

func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{db: db} }

const cityCols = "id,name,country,post_office,thumbnail_url,visitors,created_at,updated_at"

func scanCity(row interface{ Scan(...any) error }) (model.City, error) {
	var c model.City
	err := row.Scan(&c.ID, &c.Name, &c.Country, &c.PostOffice, &c.ThumbnailURL,
		&c.Visitors, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cities (name,country,post_office,thumbnail_url) VALUES (?,?,?,?)",
		c.Name, c.Country, c.PostOffice, c.ThumbnailURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

func (r *CityRepo) GetByID(ctx context.Context, id uint64) (model.City, error) {
	return scanCity(r.db.QueryRowContext(ctx,
		"SELECT "+cityCols+" FROM cities WHERE id=? LIMIT 1", id))
}

// GetByIDWithHotels returns the city and its hotels.  sql.ErrNoRows when
// the city does not exist; an empty slice when it has no hotels.
func (r *CityRepo) GetByIDWithHotels(ctx context.Context, id uint64) (model.City, []model.Hotel, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.City{}, nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+hotelCols+" FROM hotels WHERE city_id=? ORDER BY name", id)
	if err != nil {
		return model.City{}, nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return model.City{}, nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return model.City{}, nil, err
	}
	return c, hotels, nil
}

// Update rewrites the mutable columns.  Returns sql.ErrNoRows when the city
// is absent.
func (r *CityRepo) Update(ctx context.Context, c *model.City) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cities SET name=?, country=?, post_office=?, thumbnail_url=? WHERE id=?",
		c.Name, c.Country, c.PostOffice, c.ThumbnailURL, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL also reports 0 for no-op updates; confirm existence.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM cities WHERE id=?", c.ID).Scan(&one); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the city.  Returns sql.ErrNoRows when nothing was deleted.
func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cities WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns every city, alphabetically.
func (r *CityRepo) List(ctx context.Context) ([]model.City, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+cityCols+" FROM cities ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListPopular returns cities ordered by their visitor counter, highest
// first.
func (r *CityRepo) ListPopular(ctx context.Context, limit int) ([]model.City, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+cityCols+" FROM cities ORDER BY visitors DESC, id ASC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.City, 0, limit)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddVisitorsTx shifts the visitor counter by delta within tx and reports
// whether a row was updated.  The booking workflow treats a missing city as
// a logged no-op, so no error is raised here for 0 rows.
func (r *CityRepo) AddVisitorsTx(ctx context.Context, tx *sql.Tx, cityID uint64, delta int) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE cities SET visitors = visitors + ? WHERE id=?", delta, cityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists reports whether a city row exists.
func (r *CityRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM cities WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
