package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Errors maps a field name to the messages explaining why it was rejected.
// A non-nil Errors always carries at least one field.
type Errors map[string][]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge folds another error set into this one, prefixing its fields.
// Used by the combined ticket+review submission to report both forms at once.
func (e Errors) Merge(prefix string, other Errors) {
	for field, msgs := range other {
		e[prefix+"."+field] = append(e[prefix+"."+field], msgs...)
	}
}

// Struct validates v against its struct tags and returns field-level
// messages, or nil when the input is valid.
func Struct(v interface{}) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"_": {err.Error()}}
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out.Add(field, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
