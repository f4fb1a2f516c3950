package validation

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	seatIDRegex = regexp.MustCompile(`^[A-Z][1-9][0-9]?$`)
	phoneRegex  = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// RegisterCustomValidators registers domain validators on gin's binding engine.
// Call once from main before the router is built.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("seatid", validateSeatID); err != nil {
		return err
	}
	return v.RegisterValidation("phone", validatePhone)
}

// validateSeatID accepts seat identifiers like A1, B10, Z99.
func validateSeatID(fl validator.FieldLevel) bool {
	return IsValidSeatID(fl.Field().String())
}

// validatePhone accepts Indian mobile numbers, with or without a +91 prefix.
func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

// IsValidSeatID reports whether s is a well-formed seat identifier.
func IsValidSeatID(s string) bool {
	return seatIDRegex.MatchString(s)
}

// IsValidPhone reports whether s is a valid Indian mobile number.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(NormalizePhone(s))
}

// NormalizePhone strips the +91 prefix, spaces and dashes.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+91")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
