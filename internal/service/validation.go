package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every service; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationMessage renders the first failed rule as a caller-facing
// sentence such as "username is required".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_without":
		return fmt.Sprintf("%s or %s is required", fe.Field(), jsonName(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// jsonName maps the Go field names used in rule params to their wire names.
func jsonName(field string) string {
	switch field {
	case "Designation":
		return "designation"
	case "Department":
		return "department"
	default:
		return strings.ToLower(field)
	}
}
