package model

import "time"

// Room represents a row in the `rooms` table.  Rooms belong to one hotel
// and carry the nightly price used for booking totals.  When FeaturedDeal
// is set and DiscountedPrice is present, the discounted price is the one
// charged per night.
//
// Fields:
//  ID              - primary key identifier.
//  HotelID         - foreign key into hotels.
//  RoomType        - one of the RoomTypes values.
//  PricePerNight   - regular nightly price.
//  DiscountedPrice - alternate nightly price, only meaningful with FeaturedDeal.
//  FeaturedDeal    - activates the discounted price.
//  AdultCapacity   - maximum number of adults.
//  ChildCapacity   - maximum number of children.
//  ImageURLs       - room photos (stored as a JSON array).
//  CreatedAt       - timestamp when the room was created.
//  UpdatedAt       - timestamp of last update.
type Room struct {
	ID              uint64    // rooms.id
	HotelID         uint64    // rooms.hotel_id
	RoomType        string    // rooms.room_type
	PricePerNight   float64   // rooms.price_per_night
	DiscountedPrice *float64  // rooms.discounted_price (nullable)
	FeaturedDeal    bool      // rooms.featured_deal
	AdultCapacity   int       // rooms.adult_capacity
	ChildCapacity   int       // rooms.child_capacity
	ImageURLs       []string  // rooms.image_urls (JSON array)
	CreatedAt       time.Time // rooms.created_at
	UpdatedAt       time.Time // rooms.updated_at
}
