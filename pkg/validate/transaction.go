package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	time12Re = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})\s*([AaPp][Mm])$`)
	time24Re = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
	spaceRe  = regexp.MustCompile(`\s+`)

	maxAmount = decimal.NewFromInt(1_000_000_000)

	// Account and transaction-id formats overlap (a 12-digit string matches
	// several). The order below is part of the contract: first match wins.
	accountRules = []*regexp.Regexp{
		regexp.MustCompile(`^0{1,6}[0-9]{11,16}$`), // zero-padded long numeric
		regexp.MustCompile(`^[0-9]{12}$`),          // 12-digit numeric
		regexp.MustCompile(`^[0-9]{9,18}$`),        // generic numeric
	}
	transactionIDRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^0{1,6}[0-9]{11,16}$`),
		regexp.MustCompile(`(?i)^[0-9]{12}$`),
		regexp.MustCompile(`(?i)^[0-9]{9,18}$`),
		regexp.MustCompile(`(?i)^[0-9A-Z]{8,50}$`),    // UPI reference
		regexp.MustCompile(`(?i)^[A-Z]{3,}[0-9]{6,}$`), // letter prefix + numeric
		regexp.MustCompile(`(?i)^[A-Z0-9\-_]{8,50}$`), // extended charset
	}
)

// TransactionDate validates a transaction date in flexible D-M-YYYY form.
// Future dates and dates more than 5 years old are rejected. Canonical form
// is DD-MM-YYYY.
func TransactionDate(raw string, now time.Time) (string, error) {
	day, month, year, err := parseDayMonthYear(raw, "Invalid date format. Use D-M-YYYY or DD-MM-YYYY (e.g., 2-3-2024 or 02-03-2024)", now)
	if err != nil {
		return "", err
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.After(now) {
		return "", errors.New("Transaction date cannot be in the future")
	}
	if now.Sub(date) > 5*365*24*time.Hour {
		return "", errors.New("Transaction date seems too old (more than 5 years)")
	}

	return fmt.Sprintf("%02d-%02d-%d", day, month, year), nil
}

// ClockTime validates "H:MM" / "HH:MM" with optional meridiem. 12-hour input
// requires hour 1-12; 24-hour input requires hour 0-23. Canonical form is
// "HH:MM AM/PM", so "14:30" and "2:30 PM" both become "02:30 PM".
func ClockTime(raw string) (string, error) {
	t := spaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")

	if m := time12Re.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 {
			return "", errors.New("Hour must be between 1 and 12 for 12-hour format")
		}
		if minute > 59 {
			return "", errors.New("Minutes must be between 0 and 59")
		}
		return fmt.Sprintf("%02d:%02d %s", hour, minute, strings.ToUpper(m[3])), nil
	}

	if m := time24Re.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 {
			return "", errors.New("Hour must be between 0 and 23 for 24-hour format")
		}
		if minute > 59 {
			return "", errors.New("Minutes must be between 0 and 59")
		}
		switch {
		case hour == 0:
			return fmt.Sprintf("12:%02d AM", minute), nil
		case hour < 12:
			return fmt.Sprintf("%02d:%02d AM", hour, minute), nil
		case hour == 12:
			return fmt.Sprintf("12:%02d PM", minute), nil
		default:
			return fmt.Sprintf("%02d:%02d PM", hour-12, minute), nil
		}
	}

	return "", errors.New("Invalid time format. Use HH:MM (24-hour) or HH:MM AM/PM (12-hour). Examples: 14:30, 2:30 PM, 02:03 pm")
}

// BankName validates a bank name: 2-100 characters, stored upper-cased.
func BankName(raw string) (string, error) {
	bank := strings.TrimSpace(raw)
	if len(bank) < 2 {
		return "", errors.New("Bank name must be at least 2 characters long")
	}
	if len(bank) > 100 {
		return "", errors.New("Bank name must not exceed 100 characters")
	}
	return strings.ToUpper(bank), nil
}

// AccountNumber validates a bank account number against the ordered format
// rules (zero-padded, 12-digit, then generic 9-18 digit). Whitespace is
// stripped; the matched value is stored as-is.
func AccountNumber(raw string) (string, error) {
	account := strings.Join(strings.Fields(raw), "")
	for _, rule := range accountRules {
		if rule.MatchString(account) {
			return account, nil
		}
	}
	return "", errors.New("Invalid account number. Formats:\n• Generic: 9-18 digits\n• SBI: 17 digits with leading zeros\n• ICICI: 12 digits")
}

// Amount validates a transaction amount: a decimal number greater than zero
// and at most 1,000,000,000. Canonical form is "₹" plus two decimals.
func Amount(raw string) (string, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.New("Please enter a valid amount (numbers only)")
	}
	if !amount.IsPositive() {
		return "", errors.New("Amount must be greater than 0")
	}
	if amount.GreaterThan(maxAmount) {
		return "", errors.New("Amount seems too large. Please verify")
	}
	return "₹" + amount.StringFixed(2), nil
}

// TransactionID validates a transaction reference: 8-50 characters, then the
// ordered format rules (numeric account shapes, UPI, letter-prefixed,
// extended charset). Matching is case-insensitive; the canonical form is
// upper-cased with inner spaces removed.
func TransactionID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if len(id) < 8 || len(id) > 50 {
		return "", errors.New("Transaction ID must be between 8-50 characters")
	}

	clean := strings.ReplaceAll(id, " ", "")
	for _, rule := range transactionIDRules {
		if rule.MatchString(clean) {
			return strings.ToUpper(clean), nil
		}
	}
	return "", errors.New("Invalid transaction ID format. Examples:\n• Bank Account: 123456789012 (9-18 digits)\n• SBI Account: 00000012345678901 (17 digits with leading zeros)\n• ICICI Account: 123456789012 (12 digits)\n• Transaction ID: TXN1234567890\n• UPI: 1234ABCD5678EFGH")
}
