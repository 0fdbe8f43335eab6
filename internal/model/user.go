package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The json tags are omitted because these structs are used by the
// repository layer; handlers define separate response types.
//
// Fields:
//  ID           - primary key identifier of the user.
//  FirstName    - given name.
//  LastName     - family name.
//  Email        - unique email address.
//  PasswordHash - base64(salt || HMAC-SHA256(salt, password)).
//  PhoneNumber  - contact phone number.
//  DateOfBirth  - date of birth (nullable DATE column, nil when unset).
//  Address      - street address.
//  City         - city of residence.
//  Country      - country of residence.
//  Role         - role name (ADMIN or CUSTOMER).
//  CreatedAt    - timestamp of creation.
//  UpdatedAt    - timestamp of last update.
type User struct {
	ID           uint64     // users.id
	FirstName    string     // users.first_name
	LastName     string     // users.last_name
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	PhoneNumber  string     // users.phone_number
	DateOfBirth  *time.Time // users.date_of_birth
	Address      string     // users.address
	City         string     // users.city
	Country      string     // users.country
	Role         string     // users.role
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}
