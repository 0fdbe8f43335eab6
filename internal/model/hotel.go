package model

import "time"

// Hotel represents a row in the `hotels` table.  Each hotel belongs to one
// city and has many rooms, bookings and guest reviews.  StarRating is
// derived: it is always the rounded mean of the hotel's guest review
// ratings and is recomputed whenever a review is added or deleted.
//
// Fields:
//  ID           - primary key identifier.
//  Name         - hotel name.
//  Owner        - display name of the hotel owner.
//  Address      - street address.
//  HotelType    - one of the HotelTypes values.
//  CityID       - foreign key into cities.
//  StarRating   - rounded mean review rating (0 when no reviews).
//  Description  - free-text description.
//  ThumbnailURL - image shown in listings.
//  Amenities    - enumerated amenity names (stored comma separated).
//  CreatedAt    - timestamp when the hotel was created.
//  UpdatedAt    - timestamp of last update.
type Hotel struct {
	ID           uint64    // hotels.id
	Name         string    // hotels.name
	Owner        string    // hotels.owner
	Address      string    // hotels.address
	HotelType    string    // hotels.hotel_type
	CityID       uint64    // hotels.city_id
	StarRating   int       // hotels.star_rating (derived)
	Description  string    // hotels.description
	ThumbnailURL string    // hotels.thumbnail_url
	Amenities    []string  // hotels.amenities (comma separated set)
	CreatedAt    time.Time // hotels.created_at
	UpdatedAt    time.Time // hotels.updated_at
}
