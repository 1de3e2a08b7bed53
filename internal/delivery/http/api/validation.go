package api

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// personNameRegexp accepts letters (including accented vowels and ñ)
// and spaces, nothing else.
var personNameRegexp = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("person_name", validPersonName)
	}
}

func validPersonName(fl validator.FieldLevel) bool {
	return personNameRegexp.MatchString(fl.Field().String())
}

// Per-rule messages, keyed by "<struct field>.<rule>". Rules run in
// declared-tag order and only the first failure per request surfaces.
var (
	registerMessages = map[string]string{
		"Name.required":     "El nombre es obligatorio.",
		"Name.max":          "El nombre no puede superar los 255 caracteres.",
		"Name.person_name":  "El nombre solo puede contener letras y espacios.",
		"Email.required":    "El correo electrónico es obligatorio.",
		"Email.email":       "El correo electrónico debe tener un formato válido.",
		"Email.max":         "El correo electrónico no puede superar los 255 caracteres.",
		"Password.required": "La contraseña es obligatoria.",
		"Password.min":      "La contraseña debe tener al menos 8 caracteres.",
	}

	loginMessages = map[string]string{
		"Email.required":    "El correo electrónico es obligatorio.",
		"Email.email":       "El correo electrónico debe tener un formato válido.",
		"Password.required": "La contraseña es obligatoria.",
	}

	taskMessages = map[string]string{
		"Title.required":   "El título es obligatorio.",
		"Title.max":        "El título no puede superar los 255 caracteres.",
		"DueDate.required": "La fecha de vencimiento es obligatoria.",
		"Status.oneof":     "El estado debe ser pending o completed.",
	}
)

const (
	errInvalidBody      = "El cuerpo de la solicitud no es válido."
	errEmailTaken       = "El correo electrónico ya está registrado."
	errDueDateInvalid   = "La fecha de vencimiento debe ser una fecha válida."
	errDueDateTooEarly  = "La fecha de vencimiento no puede ser anterior al día actual."
	errValidationFailed = "Los datos proporcionados no son válidos."
)

// firstValidationMessage maps a binding failure to the message of the
// first failing rule. It reports false when err is not a field
// validation error (e.g. malformed JSON).
func firstValidationMessage(err error, messages map[string]string) (string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "", false
	}

	fe := ve[0]
	msg, ok := messages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = errValidationFailed
	}
	return msg, true
}
