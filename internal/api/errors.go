package api

import "strings"

// ErrorBody is the envelope every failure response carries.
// detail: a plain string for simple failures (404, 405, 500) or an ordered
// list of FieldError values for validation failures (422).
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Machine-readable categories carried in FieldError.Type. The set is part of
// the API contract; clients switch on these strings.
const (
	KindTypeError  = "type_error"        // payload shape or field type problems
	KindValueError = "value_error"       // a present value violates a business rule
	KindEmailError = "value_error.email" // a present email fails format checks
)

// FieldError pinpoints a single invalid part of a request.
// loc: path to the offending value rooted at the request section, e.g.
// ["body","age"]; whole-document failures use ["body"] alone.
// msg: human-readable description of the violation.
// type: one of the Kind constants above.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error implements the error interface so field errors can travel through
// error-returning call chains alongside plain errors.
func (e *FieldError) Error() string {
	if len(e.Loc) == 0 {
		return e.Msg
	}
	return strings.Join(e.Loc, ".") + ": " + e.Msg
}

// NewFieldError constructs a FieldError with its own copy of loc.
func NewFieldError(loc []string, msg, kind string) *FieldError {
	cloned := make([]string, len(loc))
	copy(cloned, loc)
	return &FieldError{Loc: cloned, Msg: msg, Type: kind}
}
