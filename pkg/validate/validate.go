package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe la violación de una regla sobre un campo concreto.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Message devuelve una descripción legible de la regla violada.
func (e FieldError) Message() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s es requerido", e.Field)
	case "min":
		return fmt.Sprintf("%s debe ser como mínimo %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s excede el máximo de %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", e.Field, e.Param)
	case "uuid4":
		return fmt.Sprintf("%s debe ser un UUID válido", e.Field)
	default:
		return fmt.Sprintf("%s no cumple la regla %s", e.Field, e.Rule)
	}
}

var validate = newValidator()

// newValidator configura el validador para reportar los nombres de campo
// según el tag json (product_id en vez de ProductID).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct valida data contra sus tags `validate` y devuelve un error por campo.
// Lista vacía = sin errores.
func Struct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Rule: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
