// Package validate is the validator set for complaint fields. Each function
// is total: it maps arbitrary raw text to either the canonical stored form or
// an error whose text is the user-facing rejection reason.
package validate
