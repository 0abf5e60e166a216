package appuser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
)

func TestImportRecord_ToAppUser(t *testing.T) {
	record := appuser.ImportRecord{
		FirstName:   "Stefan",
		LastName:    "Testowy",
		BirthDate:   "1988-11-11",
		PhoneNumber: "600700800",
	}

	user, err := record.ToAppUser()
	require.NoError(t, err)
	assert.Zero(t, user.ID())
	assert.Equal(t, "Stefan", user.FirstName())
	assert.Equal(t, time.Date(1988, time.November, 11, 0, 0, 0, 0, time.UTC), user.BirthDate())
	assert.Equal(t, record, user.ToImportRecord())
}

func TestImportRecord_ToAppUser_BadDate(t *testing.T) {
	record := appuser.ImportRecord{FirstName: "Stefan", LastName: "Testowy", BirthDate: "1988.11.11"}

	_, err := record.ToAppUser()
	assert.Error(t, err)
}

func TestNew_TrimsFields(t *testing.T) {
	user := appuser.New(" Stefan ", " Testowy ", time.Now(), " 600700800 ")
	assert.Equal(t, "Stefan", user.FirstName())
	assert.Equal(t, "Testowy", user.LastName())
	assert.Equal(t, "600700800", user.PhoneNumber())
	assert.False(t, user.IsZero())
	assert.True(t, appuser.AppUser{}.IsZero())
}
