package session

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/coursebook/core"
)

var (
	// password policy
	pwdMinLen     = 6
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must be at least %d characters", pwdMinLen)

	pwdConfirmTag  = "eqfield"
	pwdConfirmText = "passwords do not match"

	roleTag  = "oneof"
	roleText = "role must be one of student, faculty or admin"
)

// InitValidators registers the session validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(pwdMinLenTag, pwdMinLenValidation)
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, translator, pwdConfirmTag, pwdConfirmText, true)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText, true)
}

// Custom Validators

func pwdMinLenValidation(fl validator.FieldLevel) bool {
	return len([]rune(fl.Field().String())) >= pwdMinLen
}
