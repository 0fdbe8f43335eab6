package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/validate"
)

// RoomHandler serves room CRUD nested under hotels plus the room
// availability search.
type RoomHandler struct {
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
	Validate *validate.Validator
}

func NewRoomHandler(rooms *repository.RoomRepo, hotels *repository.HotelRepo, v *validate.Validator) *RoomHandler {
	if rooms == nil || hotels == nil || v == nil {
		panic("nil dependency passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Hotels: hotels, Validate: v}
}

type roomRequest struct {
	RoomType        string   `json:"roomType" validate:"required,room_type"`
	PricePerNight   float64  `json:"pricePerNight" validate:"required,gt=0"`
	DiscountedPrice *float64 `json:"discountedPrice" validate:"omitempty,gt=0"`
	FeaturedDeal    bool     `json:"featuredDeal"`
	AdultCapacity   int      `json:"adultCapacity" validate:"required,gte=1,lte=20"`
	ChildCapacity   int      `json:"childCapacity" validate:"gte=0,lte=20"`
	ImageURLs       []string `json:"imageUrls" validate:"dive,url"`
}

type roomResponse struct {
	ID              uint64   `json:"id"`
	HotelID         uint64   `json:"hotelId"`
	RoomType        string   `json:"roomType"`
	PricePerNight   float64  `json:"pricePerNight"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	FeaturedDeal    bool     `json:"featuredDeal"`
	AdultCapacity   int      `json:"adultCapacity"`
	ChildCapacity   int      `json:"childCapacity"`
	ImageURLs       []string `json:"imageUrls"`
}

func toRoomResponse(r model.Room) roomResponse {
	return roomResponse{
		ID:              r.ID,
		HotelID:         r.HotelID,
		RoomType:        r.RoomType,
		PricePerNight:   r.PricePerNight,
		DiscountedPrice: r.DiscountedPrice,
		FeaturedDeal:    r.FeaturedDeal,
		AdultCapacity:   r.AdultCapacity,
		ChildCapacity:   r.ChildCapacity,
		ImageURLs:       r.ImageURLs,
	}
}

// loadRoomOfHotel resolves :hotelId/:roomId and enforces the parent
// relation.  A room that exists under a different hotel is an invalid
// argument, not a missing resource.
func (h *RoomHandler) loadRoomOfHotel(c echo.Context) (model.Room, error) {
	hotelID, ok := parseID(c, "hotelId")
	if !ok {
		return model.Room{}, fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return model.Room{}, fail(c, http.StatusBadRequest, "invalid room id")
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, fail(c, http.StatusNotFound, "room not found")
		}
		return model.Room{}, fail(c, http.StatusInternalServerError, "database error")
	}
	if room.HotelID != hotelID {
		return model.Room{}, fail(c, http.StatusBadRequest, "room does not belong to this hotel")
	}
	return room, nil
}

// Create handles POST /v1/hotels/:hotelId/rooms (admin).
func (h *RoomHandler) Create(c echo.Context) error {
	hotelID, ok := parseID(c, "hotelId")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	var body roomRequest
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

	room := model.Room{
		HotelID:         hotelID,
		RoomType:        body.RoomType,
		PricePerNight:   body.PricePerNight,
		DiscountedPrice: body.DiscountedPrice,
		FeaturedDeal:    body.FeaturedDeal,
		AdultCapacity:   body.AdultCapacity,
		ChildCapacity:   body.ChildCapacity,
		ImageURLs:       body.ImageURLs,
	}
	if err := h.Rooms.Create(ctx, &room); err != nil {
		log.Error().Err(err).Msg("room create failed")
		return fail(c, http.StatusInternalServerError, "could not create room")
	}
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// List handles GET /v1/hotels/:hotelId/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	hotelID, ok := parseID(c, "hotelId")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	ctx := c.Request().Context()
	if exists, err := h.Hotels.Exists(ctx, hotelID); err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	} else if !exists {
		return fail(c, http.StatusNotFound, "hotel not found")
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database error")
	}
	items := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/hotels/:hotelId/rooms/:roomId.
func (h *RoomHandler) Get(c echo.Context) error {
	room, werr := h.loadRoomOfHotel(c)
	if werr != nil {
		return werr
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Update handles PUT /v1/hotels/:hotelId/rooms/:roomId (admin).
func (h *RoomHandler) Update(c echo.Context) error {
	room, werr := h.loadRoomOfHotel(c)
	if werr != nil {
		return werr
	}
	var body roomRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}
	room.RoomType = body.RoomType
	room.PricePerNight = body.PricePerNight
	room.DiscountedPrice = body.DiscountedPrice
	room.FeaturedDeal = body.FeaturedDeal
	room.AdultCapacity = body.AdultCapacity
	room.ChildCapacity = body.ChildCapacity
	room.ImageURLs = body.ImageURLs

	if err := h.Rooms.Update(c.Request().Context(), &room); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update room")
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Delete handles DELETE /v1/hotels/:hotelId/rooms/:roomId (admin).
func (h *RoomHandler) Delete(c echo.Context) error {
	room, werr := h.loadRoomOfHotel(c)
	if werr != nil {
		return werr
	}
	if err := h.Rooms.Delete(c.Request().Context(), room.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "room not found")
		}
		return fail(c, http.StatusInternalServerError, "could not delete room")
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /v1/rooms/search.  checkIn/checkOut must come as a
// pair; when present, rooms with an overlapping booking are excluded.
func (h *RoomHandler) Search(c echo.Context) error {
	page, pageSize := parsePaging(c)
	q := repository.RoomSearchQuery{Page: page, PageSize: pageSize}

	ci, co := c.QueryParam("checkIn"), c.QueryParam("checkOut")
	if (ci == "") != (co == "") {
		return fail(c, http.StatusBadRequest, "checkIn and checkOut must be provided together")
	}
	if ci != "" {
		checkIn, err := time.Parse("2006-01-02", ci)
		if err != nil {
			return fail(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		}
		checkOut, err := time.Parse("2006-01-02", co)
		if err != nil {
			return fail(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		}
		if !checkOut.After(checkIn) {
			return fail(c, http.StatusBadRequest, "checkOut must be after checkIn")
		}
		q.CheckIn, q.CheckOut = checkIn, checkOut
	}
	if s := c.QueryParam("adults"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fail(c, http.StatusBadRequest, "adults must be a non-negative integer")
		}
		q.Adults = n
	}
	if s := c.QueryParam("children"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fail(c, http.StatusBadRequest, "children must be a non-negative integer")
		}
		q.Children = n
	}
	if s := c.QueryParam("roomTypes"); s != "" {
		for _, t := range strings.Split(s, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if !model.ValidEnum(t, model.RoomTypes) {
				return fail(c, http.StatusBadRequest, "unknown roomType: "+t)
			}
			q.RoomTypes = append(q.RoomTypes, t)
		}
	}
	if s := c.QueryParam("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return fail(c, http.StatusBadRequest, "minPrice must be a non-negative number")
		}
		q.MinPrice = v
	}
	if s := c.QueryParam("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return fail(c, http.StatusBadRequest, "maxPrice must be a non-negative number")
		}
		q.MaxPrice = v
	}
	if q.MinPrice > 0 && q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return fail(c, http.StatusBadRequest, "minPrice cannot exceed maxPrice")
	}

	rooms, total, err := h.Rooms.Search(c.Request().Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("room search failed")
		return fail(c, http.StatusInternalServerError, "database error")
	}
	items := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, NewPage(total, page, pageSize, items))
}
