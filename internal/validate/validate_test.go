package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Email     string `validate:"required,email"`
	HotelType string `validate:"omitempty,hotel_type"`
	RoomType  string `validate:"omitempty,room_type"`
	Method    string `validate:"omitempty,payment_method"`
	Rating    int    `validate:"omitempty,gte=1,lte=5"`
}

func TestStructValid(t *testing.T) {
	v := New()
	errs := v.Struct(sampleBody{
		Email:     "guest@example.com",
		HotelType: "Boutique",
		RoomType:  "Suite",
		Method:    "CreditCard",
		Rating:    4,
	})
	assert.Nil(t, errs)
}

func TestStructFieldMessages(t *testing.T) {
	v := New()
	errs := v.Struct(sampleBody{Email: "not-an-email", HotelType: "Skyscraper"})
	require.Len(t, errs, 2)

	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Message
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "is not an accepted value", byField["hotelType"])
}

func TestStructRequired(t *testing.T) {
	v := New()
	errs := v.Struct(sampleBody{})
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
}

func TestEnumRules(t *testing.T) {
	v := New()
	tests := []struct {
		name  string
		body  sampleBody
		valid bool
	}{
		{"known room type", sampleBody{Email: "a@b.co", RoomType: "Villa"}, true},
		{"unknown room type", sampleBody{Email: "a@b.co", RoomType: "Penthouse"}, false},
		{"known payment method", sampleBody{Email: "a@b.co", Method: "PayPal"}, true},
		{"unknown payment method", sampleBody{Email: "a@b.co", Method: "Cheque"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Struct(tt.body)
			if tt.valid {
				assert.Nil(t, errs)
			} else {
				assert.NotNil(t, errs)
			}
		})
	}
}

func TestFutureDateVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var(time.Now().UTC().AddDate(0, 0, 1), "future_date"))
	assert.NoError(t, v.Var(time.Now().UTC(), "future_date")) // later today is fine
	assert.Error(t, v.Var(time.Now().UTC().AddDate(0, 0, -1), "future_date"))
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{{Field: "email", Message: "is required"}}
	assert.Contains(t, errs.Error(), "email: is required")
	assert.Empty(t, ValidationErrors{}.Error())
}
