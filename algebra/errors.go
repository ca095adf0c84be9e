package algebra

import "fmt"

// ValidationError reports a user-caused modeling mistake detected eagerly at
// construction time: an illegal name, a dimension or domain mismatch, a
// cross-container reference, an invalid redeclaration. No partially-valid
// symbol is ever registered when one of these is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TypeError reports a wrong host-level argument type, e.g. an index argument
// that is neither a set, an alias, nor a label literal.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return e.Message
}

func typeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}
