package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/validate"
)

// Edit-path rejection reasons, shown to the user verbatim.
var (
	errInvalidFieldPath       = errors.New("Invalid field number. Use 1.1-1.6 for personal info or 2.X.1-2.X.6 for transactions")
	errInvalidTransactionPath = errors.New("Invalid transaction number")
)

// EditField applies one out-of-order field mutation addressed by a dotted
// path: "1.N" targets a personal-info field, "2.T.N" targets field N of the
// T-th transaction (both 1-based). The exact validator used during linear
// collection re-runs against newValue; on success the field is overwritten in
// place and a confirmation naming the path and canonical value is returned.
// Repeating the same edit yields the same stored value and confirmation.
func EditField(sess *domain.Session, fieldPath, newValue string, now time.Time) (string, error) {
	parts := strings.Split(fieldPath, ".")

	switch {
	case len(parts) == 2 && parts[0] == "1":
		value, err := editPersonal(sess, parts[1], newValue, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Field %s updated: %s", fieldPath, value), nil

	case len(parts) == 3 && parts[0] == "2":
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", errInvalidFieldPath
		}
		if index < 1 || index > len(sess.Transactions) {
			return "", errInvalidTransactionPath
		}
		value, err := editTransaction(&sess.Transactions[index-1], parts[2], newValue, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Trans #%d field %s updated: %s", index, parts[2], value), nil
	}

	return "", errInvalidFieldPath
}

func editPersonal(sess *domain.Session, field, raw string, now time.Time) (string, error) {
	switch field {
	case "1":
		value, err := validate.Name(raw)
		if err == nil {
			sess.Personal.Name = value
		}
		return value, err
	case "2":
		value, err := validate.Mobile(raw)
		if err == nil {
			sess.Personal.Mobile = value
		}
		return value, err
	case "3":
		value, err := validate.DOB(raw, now)
		if err == nil {
			sess.Personal.DOB = value
		}
		return value, err
	case "4":
		value, err := validate.Name(raw)
		if err == nil {
			sess.Personal.FatherName = value
		}
		return value, err
	case "5":
		value, err := validate.District(raw)
		if err == nil {
			sess.Personal.District = value
		}
		return value, err
	case "6":
		value, err := validate.PinCode(raw)
		if err == nil {
			sess.Personal.PinCode = value
		}
		return value, err
	}
	return "", errInvalidFieldPath
}

func editTransaction(tx *domain.Transaction, field, raw string, now time.Time) (string, error) {
	switch field {
	case "1":
		value, err := validate.TransactionDate(raw, now)
		if err == nil {
			tx.Date = value
		}
		return value, err
	case "2":
		value, err := validate.ClockTime(raw)
		if err == nil {
			tx.Time = value
		}
		return value, err
	case "3":
		value, err := validate.BankName(raw)
		if err == nil {
			tx.BankName = value
		}
		return value, err
	case "4":
		value, err := validate.AccountNumber(raw)
		if err == nil {
			tx.AccountNo = value
		}
		return value, err
	case "5":
		value, err := validate.Amount(raw)
		if err == nil {
			tx.Amount = value
		}
		return value, err
	case "6":
		value, err := validate.TransactionID(raw)
		if err == nil {
			tx.TransactionID = value
		}
		return value, err
	}
	return "", errInvalidFieldPath
}
