package mappers

import (
	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/modules/appuser/presentation/viewmodels"
)

func AppUserToViewModel(u appuser.AppUser) *viewmodels.AppUser {
	return &viewmodels.AppUser{
		ID:          u.ID(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		BirthDate:   u.BirthDate().Format(appuser.BirthDateLayout),
		PhoneNumber: u.PhoneNumber(),
	}
}

func AppUsersToViewModels(users []appuser.AppUser) []*viewmodels.AppUser {
	out := make([]*viewmodels.AppUser, 0, len(users))
	for _, u := range users {
		out = append(out, AppUserToViewModel(u))
	}
	return out
}

func PageToViewModel(page appuser.Page) *viewmodels.AppUsersPage {
	return &viewmodels.AppUsersPage{
		Content:       AppUsersToViewModels(page.Items),
		Number:        page.PageNumber,
		Size:          page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
