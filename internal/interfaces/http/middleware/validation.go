package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator: field names are reported by
// their json (or form) tag, decimal.Decimal fields validate as numbers and
// the pref_name tag checks preference names.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	RegisterValidations(v)
}

// RegisterValidations installs the custom field handling on v
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// gt=0 and friends then work on amounts
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("pref_name", func(fl validator.FieldLevel) bool {
		return preference.ValidateName(fl.Field().String()) == nil
	})
}

// ValidationDetails converts validator errors into response details.
// It returns nil for any other error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
			Tag:     e.Tag(),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gtfield":
		return "Must be after " + e.Param()
	case "pref_name":
		return "Invalid name"
	default:
		return "Invalid value"
	}
}
