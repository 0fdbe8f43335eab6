package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

// CityHandler serves city reads for everyone and city writes for admins.
type CityHandler struct {
	Cities   *repository.CityRepo
	Validate *validate.Validator
}

func NewCityHandler(cities *repository.CityRepo, v *validate.Validator) *CityHandler {
	if cities == nil || v == nil {
		panic("nil dependency passed to NewCityHandler")
	}
	return &CityHandler{Cities: cities, Validate: v}
}

type cityRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Country      string `json:"country" validate:"required,max=100"`
	PostOffice   string `json:"postOffice" validate:"max=20"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url,max=500"`
}

type cityResponse struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	PostOffice   string `json:"postOffice,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Visitors     uint64 `json:"visitors"`
}

func toCityResponse(c model.City) cityResponse {
	return cityResponse{
		ID:           c.ID,
		Name:         c.Name,
		Country:      c.Country,
		PostOffice:   c.PostOffice,
		ThumbnailURL: c.ThumbnailURL,
		Visitors:     c.Visitors,
	}
}

// Create handles POST /v1/cities (admin).
func (h *CityHandler) Create(c echo.Context) error {
	var body cityRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	city := model.City{
		Name:         strings.TrimSpace(body.Name),
		Country:      strings.TrimSpace(body.Country),
		PostOffice:   strings.TrimSpace(body.PostOffice),
		ThumbnailURL: body.ThumbnailURL,
	}
	if err := h.Cities.Create(c.Request().Context(), &city); err != nil {
		log.Error().Err(err).Msg("city create failed")
		return fail(c, http.StatusInternalServerError, "could not create city")
	}
	return c.JSON(http.StatusCreated, toCityResponse(city))
}

// List handles GET /v1/cities.
func (h *CityHandler) List(c echo.Context) error {
	cities, err := h.Cities.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	out := make([]cityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, toCityResponse(city))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/cities/:id.  With ?withHotels=true the response also
// carries the city's hotels and their count.
func (h *CityHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid city id")
	}
	ctx := c.Request().Context()

	if c.QueryParam("withHotels") == "true" {
		city, hotels, err := h.Cities.GetByIDWithHotels(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fail(c, http.StatusNotFound, "city not found")
			}
			return fail(c, http.StatusInternalServerError, "database error")
		}
		hs := make([]hotelResponse, 0, len(hotels))
		for _, hotel := range hotels {
			hs = append(hs, toHotelResponse(hotel))
		}
		resp := struct {
			cityResponse
			Hotels     []hotelResponse `json:"hotels"`
			HotelCount int             `json:"hotelCount"`
		}{toCityResponse(city), hs, len(hs)}
		return c.JSON(http.StatusOK, resp)
	}

	city, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "city not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toCityResponse(city))
}

// Update handles PUT /v1/cities/:id (admin).
func (h *CityHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid city id")
	}
	var body cityRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	city := model.City{
		ID:           id,
		Name:         strings.TrimSpace(body.Name),
		Country:      strings.TrimSpace(body.Country),
		PostOffice:   strings.TrimSpace(body.PostOffice),
		ThumbnailURL: body.ThumbnailURL,
	}
	if err := h.Cities.Update(c.Request().Context(), &city); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "city not found")
		}
		return fail(c, http.StatusInternalServerError, "could not update city")
	}
	updated, err := h.Cities.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toCityResponse(updated))
}

// Delete handles DELETE /v1/cities/:id (admin).
func (h *CityHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid city id")
	}
	if err := h.Cities.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "city not found")
		}
		return fail(c, http.StatusInternalServerError, "could not delete city")
	}
	return c.NoContent(http.StatusNoContent)
}

// Popular handles GET /v1/cities/popular?limit= and orders by the visitor
// counter.
func (h *CityHandler) Popular(c echo.Context) error {
	limit := parseLimit(c, 5, 50)
	cities, err := h.Cities.ListPopular(c.Request().Context(), limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	out := make([]cityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, toCityResponse(city))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
