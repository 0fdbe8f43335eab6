package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotelbooking/internal/model"
)

// ValidationError carries a single field-level failure in the shape the API
// returns to clients.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors aggregates all failures for one request body.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(msgs, "; "))
}

// Validator wraps a validator.Validate with the domain's custom rules
// registered.  One instance is shared by all handlers.
type Validator struct {
	validate *validator.Validate
}

// New builds the shared Validator.  Custom tags cover the enumerated value
// sets and date rules the schema-level validation needs.
func New() *Validator {
	v := validator.New()

	mustRegister(v, "hotel_type", enumRule(model.HotelTypes))
	mustRegister(v, "room_type", enumRule(model.RoomTypes))
	mustRegister(v, "amenity", enumRule(model.HotelAmenities))
	mustRegister(v, "payment_method", enumRule(model.PaymentMethods))
	mustRegister(v, "payment_status", enumRule(model.PaymentStatuses))
	mustRegister(v, "future_date", futureDate)

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func enumRule(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true // emptiness is the business of `required`
		}
		return model.ValidEnum(s, allowed)
	}
}

// futureDate accepts time.Time fields that fall on today or later, compared
// at date granularity so a check-in later today is not rejected.
func futureDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !t.Before(today)
}

// Var validates a single value against a tag expression, for rules that
// apply to parsed values rather than request structs.
func (v *Validator) Var(value any, tag string) error {
	return v.validate.Var(value, tag)
}

// Struct validates s and converts any failures into the API's field-level
// error shape.  Returns nil when s is valid.
func (v *Validator) Struct(s any) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return ValidationErrors{{Field: "body", Message: "invalid request body"}}
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "body", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "gtfield":
		return "must be after " + fe.Param()
	case "future_date":
		return "must not be in the past"
	case "hotel_type", "room_type", "amenity", "payment_method", "payment_status":
		return "is not an accepted value"
	default:
		return "is invalid"
	}
}
