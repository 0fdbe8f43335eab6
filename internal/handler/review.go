package handler

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

// ReviewHandler serves guest review creation and deletion.  Both mutations
// recompute the hotel's derived star rating inside the same transaction, so
// the stored rating never drifts from the review set.
type ReviewHandler struct {
	DB       *sql.DB
	Reviews  *repository.ReviewRepo
	Hotels   *repository.HotelRepo
	Validate *validate.Validator
}

func NewReviewHandler(db *sql.DB, reviews *repository.ReviewRepo, hotels *repository.HotelRepo, v *validate.Validator) *ReviewHandler {
	if db == nil || reviews == nil || hotels == nil || v == nil {
		panic("nil dependency passed to NewReviewHandler")
	}
	return &ReviewHandler{DB: db, Reviews: reviews, Hotels: hotels, Validate: v}
}

// StarRating converts a set of review ratings into the stored hotel
// rating: the arithmetic mean rounded half away from zero, 0 when there
// are no reviews.
func StarRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return int(math.Round(float64(sum) / float64(len(ratings))))
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type reviewResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	HotelID   uint64 `json:"hotelId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toReviewResponse(g model.GuestReview) reviewResponse {
	return reviewResponse{
		ID:        g.ID,
		UserID:    g.UserID,
		HotelID:   g.HotelID,
		Rating:    g.Rating,
		Comment:   g.Comment,
		CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/hotels/:id/reviews (customer).
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	hotelID, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	var body reviewRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	ctx := c.Request().Context()

	if exists, err := h.Hotels.Exists(ctx, hotelID); err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	} else if !exists {
		return fail(c, http.StatusNotFound, "hotel not found")
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	review := model.GuestReview{UserID: userID, HotelID: hotelID, Rating: body.Rating, Comment: body.Comment}
	if err := h.Reviews.CreateTx(ctx, tx, &review); err != nil {
		log.Error().Err(err).Msg("review create failed")
		return fail(c, http.StatusInternalServerError, "could not create review")
	}
	if err := h.recomputeRatingTx(ctx, tx, hotelID); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update hotel rating")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true
	review.CreatedAt = time.Now().UTC()
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// Delete handles DELETE /v1/hotels/:id/reviews/:reviewId.  Admins may
// delete any review; customers only their own.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	hotelID, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}
	ctx := c.Request().Context()

	review, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if review.HotelID != hotelID {
		return fail(c, http.StatusBadRequest, "review does not belong to this hotel")
	}
	if !isAdmin(c) && review.UserID != userID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.DeleteTx(ctx, tx, reviewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "review not found")
		}
		return fail(c, http.StatusInternalServerError, "could not delete review")
	}
	if err := h.recomputeRatingTx(ctx, tx, hotelID); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update hotel rating")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to commit transaction")
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) recomputeRatingTx(ctx context.Context, tx *sql.Tx, hotelID uint64) error {
	ratings, err := h.Reviews.RatingsForHotelTx(ctx, tx, hotelID)
	if err != nil {
		return err
	}
	return h.Hotels.UpdateStarRatingTx(ctx, tx, hotelID, StarRating(ratings))
}
