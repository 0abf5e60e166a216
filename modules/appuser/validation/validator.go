// Package validation holds the field-level semantic checks applied to import
// records before they are handed to storage. The contract is a list of
// human-readable error strings in a fixed order: first name, last name, birth
// date, phone number. Every failing check contributes its own message; the
// checks never short-circuit each other.
package validation

import (
	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
)

// Validate returns the validation failures for the given record; an empty
// slice means the record is valid.
func Validate(record *appuser.ImportRecord) []string {
	if record == nil {
		return []string{"App user cannot be null"}
	}
	var result []string
	appendResult(&result, validateFirstName(record.FirstName))
	appendResult(&result, validateLastName(record.LastName))
	appendResult(&result, validateBirthDate(record.BirthDate))
	appendResult(&result, validatePhoneNumber(record.PhoneNumber))
	return result
}

func appendResult(result *[]string, message string) {
	if message != "" {
		*result = append(*result, message)
	}
}

func validateFirstName(firstName string) string {
	if firstName == "" {
		return "First name cannot be null"
	}
	if !matchesNamePattern(firstName) {
		return "First name should contain only letters"
	}
	return ""
}

func validateLastName(lastName string) string {
	if lastName == "" {
		return "Last name cannot be null"
	}
	if !matchesNamePattern(lastName) {
		return "Last name should contain only letters"
	}
	return ""
}

func validateBirthDate(birthDate string) string {
	if birthDate == "" {
		return "Birth date cannot be null"
	}
	if !matchesBirthDatePattern(birthDate) {
		return "Incorrect format of birth date"
	}
	return ""
}

func validatePhoneNumber(phoneNumber string) string {
	if phoneNumber != "" && !matchesPhoneNumberPattern(phoneNumber) {
		return "Incorrect format of phone number"
	}
	return ""
}
