package forms

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// utf16MinTag checks string length in UTF-16 code units, the unit browsers
// use for String.length and minlength. Characters outside the BMP count twice.
const utf16MinTag = "utf16min"

var validate = newValidator()

var passwordLengthTag = fmt.Sprintf("%s=%d", utf16MinTag, MinPasswordLength)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(utf16MinTag, utf16Min); err != nil {
		panic(fmt.Sprintf("forms: register %s: %v", utf16MinTag, err))
	}
	return v
}

func utf16Min(fl validator.FieldLevel) bool {
	want, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf16Len(fl.Field().String()) >= want
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ValidateSignup checks the sign-up rules in order and returns the message
// for the first one that fails, or "" when all pass.
func ValidateSignup(s SignupFormState) string {
	for _, value := range []string{s.Username, s.Email, s.Password, s.ConfirmPassword} {
		if err := validate.Var(value, "required"); err != nil {
			return MsgSignupMissingFields
		}
	}
	if err := validate.VarWithValue(s.Password, s.ConfirmPassword, "eqfield"); err != nil {
		return MsgSignupPasswordMismatch
	}
	if err := validate.Var(s.Password, passwordLengthTag); err != nil {
		return MsgSignupPasswordTooShort
	}
	return ""
}
