package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/profile-api/internal/api"
)

// Age bounds for stored profiles. The validate tags on PartialUpdate carry
// the same literals; keep them in sync.
const (
	MinAge = 18
	MaxAge = 120
)

var updateRules = newUpdateRules()

func newUpdateRules() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("email_fqdn", hasDottedDomain); err != nil {
		panic(err)
	}
	return v
}

// hasDottedDomain rejects addresses whose domain part has no dot, such as
// "alice@example". The email tag alone does not enforce this across
// validator releases; newer ones delegate to net/mail, which accepts
// dotless domains.
func hasDottedDomain(fl validator.FieldLevel) bool {
	return dottedDomain(fl.Field().String())
}

func dottedDomain(addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(addr[at+1:], ".")
}

// ValidatePartial checks every present field of patch against the profile
// field rules. Violations are collected rather than failing fast; the result
// is nil or a *ValidationError listing each one in field declaration order.
// Absent fields are always valid, as is a patch with no fields at all.
func ValidatePartial(patch PartialUpdate) error {
	err := updateRules.Struct(patch)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, violationFor(fe))
	}
	return &ValidationError{Violations: violations}
}

// violationFor converts one validator failure into the domain taxonomy.
func violationFor(fe validator.FieldError) Violation {
	switch fe.Tag() {
	case "email", "email_fqdn":
		return Violation{
			Field:   fe.Field(),
			Message: "value is not a valid email address",
			Kind:    api.KindEmailError,
		}
	case "gte", "lte":
		return Violation{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s must be between %d and %d", fe.Field(), MinAge, MaxAge),
			Kind:    api.KindValueError,
		}
	default:
		return Violation{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is invalid", fe.Field()),
			Kind:    api.KindValueError,
		}
	}
}
