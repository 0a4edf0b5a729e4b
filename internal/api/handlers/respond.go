package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// envelope is the loose response body shape of the API: a message, a
// mirrored status code, and per-endpoint resource keys.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeValidationErrors maps validator failures onto the 422 body
// shape clients already parse: a message plus per-field error lists.
func writeValidationErrors(w http.ResponseWriter, err error) {
	fieldErrors := make(map[string][]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			// Field() yields the json tag name, see newValidator.
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], validationMessage(fe))
		}
	}

	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		"message": "The given data was invalid.",
		"errors":  fieldErrors,
		"status":  http.StatusUnprocessableEntity,
	})
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "email":
		return "The " + field + " must be a valid email address."
	case "min":
		return "The " + field + " must be at least " + fe.Param() + " characters."
	case "max":
		return "The " + field + " may not be greater than " + fe.Param() + " characters."
	case "eqfield":
		return "The " + field + " confirmation does not match."
	default:
		return "The " + field + " field is invalid."
	}
}
