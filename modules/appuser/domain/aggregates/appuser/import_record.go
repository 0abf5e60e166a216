package appuser

import "time"

// ImportRecord is the in-memory shape of a record straight out of CSV parsing
// and normalization, before persistence. BirthDate is textual in the
// canonical zero-padded hyphenated form.
type ImportRecord struct {
	FirstName   string
	LastName    string
	BirthDate   string
	PhoneNumber string
}

// ToAppUser maps the import shape to the persisted shape, parsing the
// canonical textual birth date. The id stays unset; storage assigns it.
func (r ImportRecord) ToAppUser() (AppUser, error) {
	birthDate, err := time.Parse(BirthDateLayout, r.BirthDate)
	if err != nil {
		return AppUser{}, err
	}
	return New(r.FirstName, r.LastName, birthDate, r.PhoneNumber), nil
}
