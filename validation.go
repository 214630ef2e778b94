package flashclass

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

var passwordLower = regexp.MustCompile(`[a-z]`)
var passwordUpper = regexp.MustCompile(`[A-Z]`)
var passwordDigit = regexp.MustCompile(`\d`)
var nameCharset = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Validate will validate the payload
func (r Credentials) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// Validate will validate the payload
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50), validation.Match(nameCharset)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50), validation.Match(nameCharset)),
		validation.Field(&r.TeacherID, validation.Required),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 100),
			validation.By(validatePasswordComplexity),
		),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.Role, validation.Required),
	)
}

// Validate will validate the payload. Phone is optional but must be a
// parseable number when present.
func (r ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(2, 50)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Phone, validation.By(validateOptionalPhone)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

// ValidateStringEquals builds a rule asserting the value matches str.
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

func validatePasswordComplexity(value any) error {
	s, _ := value.(string)
	if !passwordLower.MatchString(s) || !passwordUpper.MatchString(s) || !passwordDigit.MatchString(s) {
		return errors.New("must contain an uppercase letter, a lowercase letter, and a number")
	}
	return nil
}

func validateOptionalPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return errors.New("must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}
