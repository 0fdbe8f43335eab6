package model

import "time"

// GuestReview is a user's 1..5 rating of a hotel with an optional comment.
// Adding or deleting a review recomputes the hotel's derived star rating.
//
// Fields:
//  ID        - primary key identifier.
//  UserID    - author of the review.
//  HotelID   - hotel being reviewed.
//  Rating    - integer rating between 1 and 5.
//  Comment   - free-text comment.
//  CreatedAt - creation timestamp.
type GuestReview struct {
	ID        uint64    // guest_reviews.id
	UserID    uint64    // guest_reviews.user_id
	HotelID   uint64    // guest_reviews.hotel_id
	Rating    int       // guest_reviews.rating
	Comment   string    // guest_reviews.comment
	CreatedAt time.Time // guest_reviews.created_at
}
