package model

// Enumerated value sets shared by validation and persistence.  Values are
// stored as their string names.

// Roles accepted in the users.role column and the JWT role claim.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// HotelTypes lists the accepted hotels.hotel_type values.
var HotelTypes = []string{
	"Luxury", "Budget", "Boutique", "Resort", "BedAndBreakfast",
}

// RoomTypes lists the accepted rooms.room_type values.
var RoomTypes = []string{
	"Single", "Double", "Twin", "Suite", "Deluxe",
	"Family", "Studio", "Apartment", "Villa",
}

// HotelAmenities lists the accepted amenity names.
var HotelAmenities = []string{
	"FreeWifi", "Parking", "SwimmingPool", "Gym", "Spa",
	"Restaurant", "Bar", "RoomService", "LaundryService",
	"AirportShuttle", "PetFriendly", "BusinessCenter",
	"NonSmokingRooms", "FamilyRooms", "AirConditioning",
	"BreakfastIncluded",
}

// PaymentMethods lists the accepted payments.method values.
var PaymentMethods = []string{
	"CreditCard", "DebitCard", "PayPal", "BankTransfer",
}

// PaymentStatuses lists the accepted payments.status values.  New payments
// always start at PaymentPending.
const PaymentPending = "Pending"

var PaymentStatuses = []string{
	PaymentPending, "Completed", "Failed", "Refunded",
}

// ValidEnum reports whether v is one of the allowed values.
func ValidEnum(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
