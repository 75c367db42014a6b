package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report field names from json tags instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validationMessage flattens validator errors into one response message.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		var reason string
		switch fieldError.Tag() {
		case "required":
			reason = "is required"
		case "uuid4":
			reason = "must be a valid UUID"
		case "email":
			reason = "must be a valid email"
		case "max":
			reason = fmt.Sprintf("must be at most %s characters", fieldError.Param())
		default:
			reason = "is invalid"
		}
		parts = append(parts, fieldError.Field()+" "+reason)
	}
	return strings.Join(parts, "; ")
}
