package model

import "time"

// City represents a row in the `cities` table.  A city groups hotels and
// carries an aggregate visitor counter that is incremented once per booking
// created for a hotel in the city and decremented once per cancellation.
//
// Fields:
//  ID           - primary key identifier.
//  Name         - city name.
//  Country      - country the city belongs to.
//  PostOffice   - postal code of the city.
//  ThumbnailURL - image shown in city listings.
//  Visitors     - aggregate booking counter.
//  CreatedAt    - timestamp when the city was created.
//  UpdatedAt    - timestamp of last update.
type City struct {
	ID           uint64    // cities.id
	Name         string    // cities.name
	Country      string    // cities.country
	PostOffice   string    // cities.post_office
	ThumbnailURL string    // cities.thumbnail_url
	Visitors     uint64    // cities.visitors
	CreatedAt    time.Time // cities.created_at
	UpdatedAt    time.Time // cities.updated_at
}
