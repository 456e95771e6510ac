package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/location-quest/internal/pkg/errors"
)

var (
	validate *validator.Validate

	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)
	boundsPattern   = regexp.MustCompile(`^-?\d+\.?\d*,-?\d+\.?\d*,-?\d+\.?\d*,-?\d+\.?\d*$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "params"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = validate.RegisterValidation("hexcolor8", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("bounds", func(fl validator.FieldLevel) bool {
		return boundsPattern.MatchString(fl.Field().String())
	})
}

// Validate checks s against its struct tags. Failures come back as an
// INVALID_REQUEST AppError carrying one entry per failed field.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidRequest
	}

	details := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, errors.FieldError{
			Path:    fieldPath(fe),
			Message: message(fe),
		})
	}
	return errors.Validation(details)
}

// GetValidator exposes the shared instance for custom registrations.
func GetValidator() *validator.Validate {
	return validate
}

// fieldPath drops the root struct name: "Req.points[0].latitude" -> "points.0.latitude".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", fe.Field())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("Invalid %s format", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "hexcolor8":
		return "Color must be a valid hex color code (e.g., #FF5733 or #FF5733AA)"
	case "bounds":
		return "Bounds must be in format: lat1,lng1,lat2,lng2"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return "Invalid datetime format"
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// ParseBounds parses "lat1,lng1,lat2,lng2" into normalized min/max values.
func ParseBounds(s string) (minLat, minLng, maxLat, maxLng float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("bounds must have 4 components, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, perr := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if perr != nil {
			return 0, 0, 0, 0, fmt.Errorf("parse bounds component %d: %w", i, perr)
		}
		vals[i] = v
	}
	minLat, maxLat = vals[0], vals[2]
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	minLng, maxLng = vals[1], vals[3]
	if minLng > maxLng {
		minLng, maxLng = maxLng, minLng
	}
	return minLat, minLng, maxLat, maxLng, nil
}
