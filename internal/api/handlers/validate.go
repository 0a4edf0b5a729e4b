package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator whose error messages name fields by
// their json tag rather than the Go struct field.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
	return v
}
