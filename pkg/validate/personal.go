package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Every validator takes raw user text and returns the canonical stored form,
// or an error whose message is shown to the user verbatim. Validators never
// panic on any input.

var (
	nameRe       = regexp.MustCompile(`^[a-zA-Z\s.]+$`)
	districtRe   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	pinRe        = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	mobileNoise  = regexp.MustCompile(`[\s\-()]`)
	districtCase = cases.Title(language.Und)
)

// Name validates a person's name: 2-50 characters of letters, spaces and
// dots. Each word is capitalized; initial forms like ".S" and "S." keep
// their dot position.
func Name(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len(name) < 2 {
		return "", errors.New("Name must be at least 2 characters long")
	}
	if len(name) > 50 {
		return "", errors.New("Name must not exceed 50 characters")
	}
	if !nameRe.MatchString(name) {
		return "", errors.New("Name should contain only alphabets, spaces, and dots (for initials)")
	}

	var parts []string
	for _, part := range strings.Fields(name) {
		if part == "." {
			continue
		}
		if strings.Contains(part, ".") {
			clean := strings.ReplaceAll(part, ".", "")
			if clean != "" {
				if strings.HasPrefix(part, ".") {
					part = "." + strings.ToUpper(clean[:1])
				} else {
					part = strings.ToUpper(clean[:1]) + "."
				}
			}
			parts = append(parts, part)
		} else {
			parts = append(parts, capitalize(part))
		}
	}
	return strings.Join(parts, " "), nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// Mobile validates an Indian mobile number. Separators are stripped, a bare
// 10-digit number gets the +91 prefix, and the result is checked against the
// national numbering plan. Canonical form is E.164.
func Mobile(raw string) (string, error) {
	mobile := mobileNoise.ReplaceAllString(raw, "")

	if !strings.HasPrefix(mobile, "+") {
		if len(mobile) == 10 {
			mobile = "+91" + mobile
		} else {
			mobile = "+" + mobile
		}
	}

	parsed, err := phonenumbers.Parse(mobile, "IN")
	if err != nil {
		return "", errors.New("Invalid mobile number. Please enter a valid 10-digit number")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", errors.New("Invalid mobile number format")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// DOB validates a date of birth in flexible D-M-YYYY form and enforces an
// 18-120 year age range relative to now. Canonical form is DD-MM-YYYY.
func DOB(raw string, now time.Time) (string, error) {
	day, month, year, err := parseDayMonthYear(raw, "Invalid date format. Use D-M-YYYY or DD-MM-YYYY (e.g., 2-3-2001 or 02-03-2001)", now)
	if err != nil {
		return "", err
	}

	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.After(now) {
		return "", errors.New("Date of birth cannot be in the future")
	}

	age := now.Year() - year
	if int(now.Month()) < month || (int(now.Month()) == month && now.Day() < day) {
		age--
	}
	if age < 18 {
		return "", errors.New("Complainant must be at least 18 years old")
	}
	if age > 120 {
		return "", errors.New("Invalid date of birth")
	}

	return fmt.Sprintf("%02d-%02d-%d", day, month, year), nil
}

// parseDayMonthYear splits "D-M-YYYY" and range-checks each component,
// including real calendar validity (rejects 31-2-2001 and the like).
func parseDayMonthYear(raw, formatHint string, now time.Time) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return 0, 0, 0, errors.New(formatHint)
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, errors.New(formatHint)
	}

	if day < 1 || day > 31 {
		return 0, 0, 0, errors.New("Day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, errors.New("Month must be between 1 and 12")
	}
	if year < 1900 || year > now.Year() {
		return 0, 0, 0, errors.New("Year must be between 1900 and current year")
	}

	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if check.Day() != day || int(check.Month()) != month || check.Year() != year {
		return 0, 0, 0, errors.New("Invalid date values. Day does not exist in that month")
	}

	return day, month, year, nil
}

// District validates a district name: 2-50 letters and spaces, title-cased.
func District(raw string) (string, error) {
	district := strings.TrimSpace(raw)
	if len(district) < 2 {
		return "", errors.New("District name must be at least 2 characters long")
	}
	if len(district) > 50 {
		return "", errors.New("District name must not exceed 50 characters")
	}
	if !districtRe.MatchString(district) {
		return "", errors.New("District name should contain only alphabets and spaces")
	}
	return districtCase.String(district), nil
}

// PinCode validates an Indian PIN code: exactly 6 digits, no leading zero.
func PinCode(raw string) (string, error) {
	pin := strings.TrimSpace(raw)
	if !pinRe.MatchString(pin) {
		return "", errors.New("Invalid PIN code. Must be 6 digits and cannot start with 0")
	}
	return pin, nil
}

// Count validates a positive integer in 1-100, used for the transaction
// count. fieldName is interpolated into the rejection messages.
func Count(raw, fieldName string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("Please enter a valid number for %s", fieldName)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", fieldName)
	}
	if n > 100 {
		return 0, fmt.Errorf("%s seems too large. Please enter a valid number", fieldName)
	}
	return n, nil
}
