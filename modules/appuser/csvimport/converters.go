package csvimport

import (
	"regexp"
	"strings"
	"time"

	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/pkg/serrors"
)

// The four accepted textual shapes of a birth date. The delimiter position
// matches any single character; the dotted-layout parse below is what finally
// pins it down to a dot.
var (
	shortMonthShortDayDate = regexp.MustCompile(`^[0-9]{4}.[1-9].[1-9]$`)
	shortMonthDate         = regexp.MustCompile(`^[0-9]{4}.[1-9].[0-3][0-9]$`)
	shortDayDate           = regexp.MustCompile(`^[0-9]{4}.[0-1][0-9].[1-9]$`)
	paddedDate             = regexp.MustCompile(`^[0-9]{4}.[0-1][0-9].[0-3][0-9]$`)

	phoneNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)
)

const dottedBirthDateLayout = "2006.01.02"

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", serrors.NewValidation("CSV_EMPTY_FIELD", "Field cannot be empty")
	}
	return name, nil
}

// normalizeBirthDate zero-pads single-digit month and day segments, then
// reparses the dotted form and renders it in the canonical hyphenated layout.
func normalizeBirthDate(raw string) (string, error) {
	padded, err := padBirthDate(raw)
	if err != nil {
		return "", err
	}
	birthDate, err := time.Parse(dottedBirthDateLayout, padded)
	if err != nil {
		return "", serrors.NewValidation("CSV_BAD_DATE", "Incorrect format of birth date")
	}
	return birthDate.Format(appuser.BirthDateLayout), nil
}

func padBirthDate(raw string) (string, error) {
	switch {
	case shortMonthShortDayDate.MatchString(raw):
		return raw[:5] + "0" + raw[5:7] + "0" + raw[7:], nil
	case shortDayDate.MatchString(raw):
		return raw[:8] + "0" + raw[8:], nil
	case shortMonthDate.MatchString(raw):
		return raw[:5] + "0" + raw[5:], nil
	case paddedDate.MatchString(raw):
		return raw, nil
	default:
		return "", serrors.NewValidation("CSV_BAD_DATE", "Incorrect format of birth date")
	}
}

func normalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if !phoneNumberPattern.MatchString(raw) {
		return "", serrors.NewValidation("CSV_BAD_PHONE", "Incorrect phone number format")
	}
	return raw, nil
}
