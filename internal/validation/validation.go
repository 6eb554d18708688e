package validation

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxImageSizeKB caps uploaded image attachments.
const MaxImageSizeKB = 2048

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the wire field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Errors maps a field name to its human-readable failure messages.
type Errors map[string][]string

// Add appends a message for a field, creating the slice on first use.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Struct runs the declared tag rules against req and returns every failing
// field. A nil result means the payload is clean. Services append their own
// store-backed checks (uniqueness, referential existence) to the same map so
// a single 422 enumerates all violations.
func Struct(req interface{}) Errors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs := make(Errors)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			errs.Add(fe.Field(), messageFor(fe))
		}
	}
	return errs
}

// CheckImage validates an optional uploaded image. Returns an empty string
// when the file is absent or acceptable, otherwise the failure message.
func CheckImage(file *multipart.FileHeader) string {
	if file == nil {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "The image must be a file of type: jpg, jpeg, png."
	}
	if file.Size > MaxImageSizeKB*1024 {
		return fmt.Sprintf("The image may not be greater than %d kilobytes.", MaxImageSizeKB)
	}
	return ""
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "numeric":
		return "Must contain only digits"
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "oneof":
		options := strings.ReplaceAll(fe.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Invalid %s field", fe.Field())
	}
}
