package domain

import (
	"errors"
	"strings"
)

var (
	errIBANLength   = errors.New("iban must be between 15 and 34 characters")
	errIBANCountry  = errors.New("iban must start with a two letter country code and two check digits")
	errIBANChar     = errors.New("iban may only contain letters and digits")
	errIBANChecksum = errors.New("iban checksum mismatch")
)

// NormalizeIBAN strips spaces and upper-cases an IBAN as typed by a user.
func NormalizeIBAN(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
}

// ValidateIBAN checks the structure and the ISO 13616 mod-97 check digits of a
// normalised IBAN.
func ValidateIBAN(iban string) error {
	if len(iban) < 15 || len(iban) > 34 {
		return errIBANLength
	}
	if !isUpperLetter(iban[0]) || !isUpperLetter(iban[1]) || !isDigit(iban[2]) || !isDigit(iban[3]) {
		return errIBANCountry
	}

	// Move the first four characters to the end and fold letters into digits
	// (A=10 .. Z=35) while keeping a running remainder.
	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case isDigit(c):
			remainder = (remainder*10 + int(c-'0')) % 97
		case isUpperLetter(c):
			remainder = (remainder*100 + int(c-'A') + 10) % 97
		default:
			return errIBANChar
		}
	}
	if remainder != 1 {
		return errIBANChecksum
	}
	return nil
}

func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isUpperLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
