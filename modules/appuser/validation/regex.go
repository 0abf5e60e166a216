package validation

import "regexp"

// Patterns kept from the legacy import contract. The birth date check is
// pattern-based, not calendar-aware: day 30 in February passes. That
// permissiveness is part of the contract, not an oversight.
var (
	namePattern      = regexp.MustCompile(`^[A-Za-ząćęłńóśźżĄĘŁŃÓŚŹŻ]+$`)
	birthDatePattern = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-((0[1-9])|([12][0-9])|(3[01]))$`)
	phonePattern     = regexp.MustCompile(`^[4-8][0-9]{8}$`)
)

func matchesNamePattern(name string) bool {
	return namePattern.MatchString(name)
}

func matchesBirthDatePattern(birthDate string) bool {
	return birthDatePattern.MatchString(birthDate)
}

func matchesPhoneNumberPattern(phoneNumber string) bool {
	return phonePattern.MatchString(phoneNumber)
}
