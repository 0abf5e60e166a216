package persistence

import (
	"database/sql"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/modules/appuser/infrastructure/persistence/models"
)

func ToDomainAppUser(row models.AppUser) appuser.AppUser {
	return appuser.Hydrate(row.ID, row.FirstName, row.LastName, row.BirthDate, row.PhoneNo.String)
}

func ToDomainAppUsers(rows []models.AppUser) []appuser.AppUser {
	users := make([]appuser.AppUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, ToDomainAppUser(row))
	}
	return users
}

func ToDBAppUser(u appuser.AppUser) models.AppUser {
	return models.AppUser{
		ID:        u.ID(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		BirthDate: u.BirthDate(),
		PhoneNo:   nullablePhone(u.PhoneNumber()),
	}
}

// nullablePhone keeps blank phone numbers out of the unique index by storing
// them as NULL.
func nullablePhone(phone string) sql.NullString {
	return sql.NullString{String: phone, Valid: phone != ""}
}
