package usecases

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/example/hotel-booking/internal/internaltypes"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// inputValidator reports fields by their json names.
func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// validateStruct converts validator failures into FieldErrors.
func validateStruct(v any) internaltypes.FieldErrors {
	err := inputValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return internaltypes.FieldErrors{{Field: "body", Reason: err.Error(), Err: internaltypes.ErrValidation}}
	}
	out := make(internaltypes.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, internaltypes.FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
			Err:    internaltypes.ErrValidation,
		})
	}
	return out
}

// fieldPath strips the struct name: "ReservationInput.guests_list[0].gender" -> "guests_list[0].gender".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
