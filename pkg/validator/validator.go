package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

var moduleKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,99}$`)

func init() {
	// module_key: identifiers such as "clinic_lead" or "create-lead"
	validate.RegisterValidation("module_key", func(fl validator.FieldLevel) bool {
		return moduleKeyPattern.MatchString(fl.Field().String())
	})
}

// ValidModuleKey reports whether key is an acceptable module identifier
func ValidModuleKey(key string) bool {
	return moduleKeyPattern.MatchString(key)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
