package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

// HotelHandler serves hotel CRUD, search and the derived browse endpoints
// (featured deals, the caller's recently visited hotels).
type HotelHandler struct {
	Hotels   *repository.HotelRepo
	Cities   *repository.CityRepo
	Validate *validate.Validator
}

func NewHotelHandler(hotels *repository.HotelRepo, cities *repository.CityRepo, v *validate.Validator) *HotelHandler {
	if hotels == nil || cities == nil || v == nil {
		panic("nil dependency passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Cities: cities, Validate: v}
}

type hotelRequest struct {
	Name         string   `json:"name" validate:"required,max=150"`
	Owner        string   `json:"owner" validate:"required,max=100"`
	Address      string   `json:"address" validate:"max=255"`
	HotelType    string   `json:"hotelType" validate:"required,hotel_type"`
	CityID       uint64   `json:"cityId" validate:"required,gt=0"`
	Description  string   `json:"description" validate:"max=2000"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url,max=500"`
	Amenities    []string `json:"amenities" validate:"dive,amenity"`
}

type hotelResponse struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Owner        string   `json:"owner"`
	Address      string   `json:"address,omitempty"`
	HotelType    string   `json:"hotelType"`
	CityID       uint64   `json:"cityId"`
	StarRating   int      `json:"starRating"`
	Description  string   `json:"description,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Amenities    []string `json:"amenities"`
}

func toHotelResponse(h model.Hotel) hotelResponse {
	return hotelResponse{
		ID:           h.ID,
		Name:         h.Name,
		Owner:        h.Owner,
		Address:      h.Address,
		HotelType:    h.HotelType,
		CityID:       h.CityID,
		StarRating:   h.StarRating,
		Description:  h.Description,
		ThumbnailURL: h.ThumbnailURL,
		Amenities:    h.Amenities,
	}
}

func (h *HotelHandler) bindHotel(c echo.Context) (model.Hotel, error) {
	var body hotelRequest
	if err := c.Bind(&body); err != nil {
		return model.Hotel{}, fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return model.Hotel{}, failValidation(c, verrs)
	}
	return model.Hotel{
		Name:         strings.TrimSpace(body.Name),
		Owner:        strings.TrimSpace(body.Owner),
		Address:      strings.TrimSpace(body.Address),
		HotelType:    body.HotelType,
		CityID:       body.CityID,
		Description:  body.Description,
		ThumbnailURL: body.ThumbnailURL,
		Amenities:    body.Amenities,
	}, nil
}

// Create handles POST /v1/hotels (admin).  The referenced city must exist.
func (h *HotelHandler) Create(c echo.Context) error {
	hotel, werr := h.bindHotel(c)
	if werr != nil {
		return werr
	}
	ctx := c.Request().Context()
	ok, err := h.Cities.Exists(ctx, hotel.CityID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if !ok {
		return fail(c, http.StatusNotFound, "city not found")
	}
	if err := h.Hotels.Create(ctx, &hotel); err != nil {
		log.Error().Err(err).Msg("hotel create failed")
		return fail(c, http.StatusInternalServerError, "could not create hotel")
	}
	return c.JSON(http.StatusCreated, toHotelResponse(hotel))
}

// Get handles GET /v1/hotels/:id.  With ?withReviews=true the response also
// carries the hotel's guest reviews.
func (h *HotelHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	ctx := c.Request().Context()

	if c.QueryParam("withReviews") == "true" {
		hotel, reviews, err := h.Hotels.GetByIDWithReviews(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fail(c, http.StatusNotFound, "hotel not found")
			}
			return fail(c, http.StatusInternalServerError, "database error")
		}
		rs := make([]reviewResponse, 0, len(reviews))
		for _, g := range reviews {
			rs = append(rs, toReviewResponse(g))
		}
		resp := struct {
			hotelResponse
			Reviews []reviewResponse `json:"reviews"`
		}{toHotelResponse(hotel), rs}
		return c.JSON(http.StatusOK, resp)
	}

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "hotel not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toHotelResponse(hotel))
}

// Update handles PUT /v1/hotels/:id (admin).  StarRating is derived and
// cannot be set here.
func (h *HotelHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	hotel, werr := h.bindHotel(c)
	if werr != nil {
		return werr
	}
	hotel.ID = id
	ctx := c.Request().Context()

	if exists, err := h.Hotels.Exists(ctx, id); err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	} else if !exists {
		return fail(c, http.StatusNotFound, "hotel not found")
	}
	if cityOK, err := h.Cities.Exists(ctx, hotel.CityID); err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	} else if !cityOK {
		return fail(c, http.StatusNotFound, "city not found")
	}
	if err := h.Hotels.Update(ctx, &hotel); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update hotel")
	}
	updated, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toHotelResponse(updated))
}

// Delete handles DELETE /v1/hotels/:id (admin).
func (h *HotelHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "hotel not found")
		}
		return fail(c, http.StatusInternalServerError, "could not delete hotel")
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /v1/hotels/search with optional filters and returns
// the shared pagination envelope.
func (h *HotelHandler) Search(c echo.Context) error {
	page, pageSize := parsePaging(c)
	q := repository.HotelSearchQuery{
		Query:     strings.TrimSpace(c.QueryParam("query")),
		HotelType: c.QueryParam("hotelType"),
		Page:      page,
		PageSize:  pageSize,
	}
	if s := c.QueryParam("minRating"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 5 {
			return fail(c, http.StatusBadRequest, "minRating must be between 1 and 5")
		}
		q.MinRating = n
	}
	if s := c.QueryParam("maxRating"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 5 {
			return fail(c, http.StatusBadRequest, "maxRating must be between 1 and 5")
		}
		q.MaxRating = n
	}
	if q.HotelType != "" && !model.ValidEnum(q.HotelType, model.HotelTypes) {
		return fail(c, http.StatusBadRequest, "unknown hotelType")
	}
	if s := c.QueryParam("amenities"); s != "" {
		for _, a := range strings.Split(s, ",") {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			if !model.ValidEnum(a, model.HotelAmenities) {
				return fail(c, http.StatusBadRequest, "unknown amenity: "+a)
			}
			q.Amenities = append(q.Amenities, a)
		}
	}

	hotels, total, err := h.Hotels.Search(c.Request().Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("hotel search failed")
		return fail(c, http.StatusInternalServerError, "database error")
	}
	items := make([]hotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		items = append(items, toHotelResponse(hotel))
	}
	return c.JSON(http.StatusOK, NewPage(total, page, pageSize, items))
}

// FeaturedDeals handles GET /v1/hotels/featured-deals?limit=.
func (h *HotelHandler) FeaturedDeals(c echo.Context) error {
	limit := parseLimit(c, 5, 50)
	hotels, err := h.Hotels.ListFeaturedDeals(c.Request().Context(), limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	items := make([]hotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		items = append(items, toHotelResponse(hotel))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Recent handles GET /v1/hotels/recent?limit= and lists hotels from the
// caller's past stays.  No past stays is a 404.
func (h *HotelHandler) Recent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	limit := parseLimit(c, 5, 50)
	hotels, err := h.Hotels.ListRecentForUser(c.Request().Context(), userID, limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if len(hotels) == 0 {
		return fail(c, http.StatusNotFound, "no recently visited hotels")
	}
	items := make([]hotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		items = append(items, toHotelResponse(hotel))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
