package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// a file extension such as ".ifc" or ".graphml"
	extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9][A-Za-z0-9._-]*$`)
	// an IFC entity type name such as "IfcSpace"
	ifcTypePattern = regexp.MustCompile(`^Ifc[A-Za-z0-9]+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report yaml key names rather than Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	validate.RegisterValidation("ifctype", func(fl validator.FieldLevel) bool {
		return ifcTypePattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct checks v against its validate struct tags. Besides the
// stock tags it understands "ifctype".
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateExtension reports whether ext is a usable file extension.
func ValidateExtension(ext string) error {
	if !extensionPattern.MatchString(ext) {
		return fmt.Errorf("extension %q must start with a dot followed by letters or digits", ext)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), rootName(e)+".")
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: %q must be one of [%s]", field, e.Value(), param)
		case "ifctype":
			return fmt.Errorf("%s: %q is not an IFC type name", field, e.Value())
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

func rootName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}
	return ns
}
