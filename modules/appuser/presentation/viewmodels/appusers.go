package viewmodels

type AppUser struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BirthDate   string `json:"birthDate"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AppUsersPage mirrors the paged response shape legacy clients already
// consume: content plus zero-based page coordinates and totals.
type AppUsersPage struct {
	Content       []*AppUser `json:"content"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}
