package repository

import (
	"context"
	"database/sql"
	"strings"

	"hotelbooking/internal/model"
	"hotelbooking/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,first_name,last_name,email,password_hash,phone_number,date_of_birth,address,city,country,role,created_at,updated_at"

// Create hashes the password, inserts the user and fills in the generated
// ID.  A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (first_name,last_name,email,password_hash,phone_number,date_of_birth,address,city,country,role)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.PhoneNumber,
		u.DateOfBirth, u.Address, u.City, u.Country, u.Role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.PhoneNumber,
			&u.DateOfBirth, &u.Address, &u.City, &u.Country, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.PhoneNumber,
			&u.DateOfBirth, &u.Address, &u.City, &u.Country, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
