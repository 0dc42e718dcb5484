package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// messages replacing the default english ones
var customMessages = []struct {
	tag, text string
}{
	{"required", "this field is required"},
	{"required_with", "this field is required"},
}

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	return translator
}

// InitValidators sets up validate to report errors under JSON field names, with english messages.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
	validate.RegisterTagNameFunc(jsonFieldName)
	for _, m := range customMessages {
		RegisterCustomTranslation(validate, translator, m.tag, m.text, true)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// RegisterCustomTranslation registers text as the message of the validation tag.
// Set override when the tag already has a (default) message.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	ovrd := len(override) > 0 && override[0]
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors returns the translated messages of validator errors keyed by field name.
// ok is false if err is not a validator.ValidationErrors.
func TranslateErrors(err error, translator ut.Translator) (msgs map[string]string, ok bool) {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	msgs = make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		msgs[vErr.Field()] = vErr.Translate(translator)
	}
	return msgs, true
}
