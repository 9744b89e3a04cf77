package validators

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input field names. They match the JSON keys of the request bodies and are
// used both to scope validation and as keys in [Errors].
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldLat                  = "lat"
	FieldLng                  = "lng"
	FieldStatus               = "status"
	FieldFieldID              = "field_id"
)

// Length and range limits of the stored columns.
const (
	MaxUserNameLength     = 255
	MaxResourceNameLength = 100
	MaxStatusLength       = 50
	MinPasswordLength     = 8
	MinLoginPasswordLen   = 6
)

// attribute turns an input field name into the words used in messages.
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// RequiredMessage is reported when a mandatory field is absent or blank.
func RequiredMessage(field string) string {
	return fmt.Sprintf("The %s field is required.", attribute(field))
}

// MaxMessage is reported when a string field is longer than max characters.
func MaxMessage(field string, max int) string {
	return fmt.Sprintf("The %s must not be greater than %d characters.", attribute(field), max)
}

// MinMessage is reported when a string field is shorter than min characters.
func MinMessage(field string, min int) string {
	return fmt.Sprintf("The %s must be at least %d characters.", attribute(field), min)
}

// EmailMessage is reported when a field is not a valid email address.
func EmailMessage(field string) string {
	return fmt.Sprintf("The %s must be a valid email address.", attribute(field))
}

// UniqueMessage is reported when a value is already used by another record.
func UniqueMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", attribute(field))
}

// ExistsMessage is reported when a reference points at no record.
func ExistsMessage(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", attribute(field))
}

// ConfirmedMessage is reported when the confirmation does not match.
func ConfirmedMessage(field string) string {
	return fmt.Sprintf("The %s confirmation does not match.", attribute(field))
}

// MixedCaseMessage is reported when a password lacks either letter case.
func MixedCaseMessage(field string) string {
	return fmt.Sprintf("The %s must contain at least one uppercase and one lowercase letter.", attribute(field))
}

// SymbolsMessage is reported when a password contains no symbol.
func SymbolsMessage(field string) string {
	return fmt.Sprintf("The %s must contain at least one symbol.", attribute(field))
}

// BetweenMessage is reported when a number is outside [min, max].
func BetweenMessage(field string, min, max float64) string {
	return fmt.Sprintf("The %s must be between %s and %s.", attribute(field),
		strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64))
}

// TypeMessage is reported when a field holds a JSON value of the wrong type.
// kind reads like "a number" or "a string".
func TypeMessage(field, kind string) string {
	return fmt.Sprintf("The %s must be %s.", attribute(field), kind)
}

// isBlank reports whether s has no non-space characters.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// length counts characters, not bytes.
func length(s string) int {
	return utf8.RuneCountInString(s)
}

// IsEmail reports whether s is a bare RFC 5322 address ("user@host"), without
// a display name or angle brackets.
func IsEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	return addr.Name == "" && addr.Address == s
}

// hasMixedCase reports whether s contains both an upper- and a lower-case letter.
func hasMixedCase(s string) bool {
	var upper, lower bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return upper && lower
}

// hasSymbol reports whether s contains a rune that is neither a letter, a
// digit nor whitespace.
func hasSymbol(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// checkName applies the required and max-length rules to a name field.
func checkName(errs Errors, field, value string, max int) {
	if isBlank(value) {
		errs.Add(field, RequiredMessage(field))
		return
	}
	if length(value) > max {
		errs.Add(field, MaxMessage(field, max))
	}
}

// checkEmail applies the required and email-syntax rules.
func checkEmail(errs Errors, field, value string) {
	if isBlank(value) {
		errs.Add(field, RequiredMessage(field))
		return
	}
	if !IsEmail(value) {
		errs.Add(field, EmailMessage(field))
	}
}

// checkStrongPassword applies the registration password policy: required,
// minimum length, mixed case, a symbol and a matching confirmation.
func checkStrongPassword(errs Errors, password, confirmation string) {
	if password == "" {
		errs.Add(FieldPassword, RequiredMessage(FieldPassword))
		return
	}
	if length(password) < MinPasswordLength {
		errs.Add(FieldPassword, MinMessage(FieldPassword, MinPasswordLength))
	}
	if !hasMixedCase(password) {
		errs.Add(FieldPassword, MixedCaseMessage(FieldPassword))
	}
	if !hasSymbol(password) {
		errs.Add(FieldPassword, SymbolsMessage(FieldPassword))
	}
	if password != confirmation {
		errs.Add(FieldPassword, ConfirmedMessage(FieldPassword))
	}
}

// checkBetween applies the range rule to an already present number.
func checkBetween(errs Errors, field string, value, min, max float64) {
	if value < min || value > max {
		errs.Add(field, BetweenMessage(field, min, max))
	}
}

// scope reports whether field should be validated given the requested subset.
// An empty subset selects every field.
func scope(fields []string, field string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
