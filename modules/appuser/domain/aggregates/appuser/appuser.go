package appuser

import (
	"strings"
	"time"
)

// BirthDateLayout is the canonical textual form of a birth date everywhere
// outside the database: zero-padded, hyphen-delimited.
const BirthDateLayout = "2006-01-02"

// AppUser is the persisted record shape. Records are immutable once stored;
// there is no update path.
type AppUser struct {
	id          int64
	firstName   string
	lastName    string
	birthDate   time.Time
	phoneNumber string
}

// New builds a not-yet-persisted record; the id stays zero until storage
// assigns one.
func New(firstName, lastName string, birthDate time.Time, phoneNumber string) AppUser {
	return AppUser{
		firstName:   strings.TrimSpace(firstName),
		lastName:    strings.TrimSpace(lastName),
		birthDate:   birthDate,
		phoneNumber: strings.TrimSpace(phoneNumber),
	}
}

func Hydrate(id int64, firstName, lastName string, birthDate time.Time, phoneNumber string) AppUser {
	return AppUser{
		id:          id,
		firstName:   firstName,
		lastName:    lastName,
		birthDate:   birthDate,
		phoneNumber: phoneNumber,
	}
}

func (u AppUser) ID() int64            { return u.id }
func (u AppUser) FirstName() string    { return u.firstName }
func (u AppUser) LastName() string     { return u.lastName }
func (u AppUser) BirthDate() time.Time { return u.birthDate }
func (u AppUser) PhoneNumber() string  { return u.phoneNumber }
func (u AppUser) IsZero() bool         { return u.id == 0 && u.firstName == "" && u.lastName == "" }

// ToImportRecord maps a persisted record back to the import shape, formatting
// the birth date to its canonical textual form.
func (u AppUser) ToImportRecord() ImportRecord {
	return ImportRecord{
		FirstName:   u.firstName,
		LastName:    u.lastName,
		BirthDate:   u.birthDate.Format(BirthDateLayout),
		PhoneNumber: u.phoneNumber,
	}
}
