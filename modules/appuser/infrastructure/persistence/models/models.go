package models

import (
	"database/sql"
	"time"
)

type AppUser struct {
	ID        int64          `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	BirthDate time.Time      `db:"birth_date"`
	PhoneNo   sql.NullString `db:"phone_no"`
}
