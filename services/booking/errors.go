package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionNotFound   = errors.New("booking session not found or expired")
	ErrWizardClosed      = errors.New("booking wizard is already closed")
	ErrPaymentInProgress = errors.New("payment confirmation already in progress")
	ErrPaymentLocked     = errors.New("transaction code entry is locked until the prompt is sent or manual payment is selected")
	ErrAlreadyPaid       = errors.New("payment already confirmed")
	ErrServiceNotFound   = errors.New("service not found")
)

// ValidationError is a user-correctable input problem. The wizard state is left unchanged.
type ValidationError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Fields, ", "))
}

func NewValidationError(msg string, fields ...string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
		Fields:  fields,
	}
}

// TransitionError is an event that the current state does not accept.
type TransitionError struct {
	Code    string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewTransitionError(format string, args ...any) error {
	return &TransitionError{
		Code:    "invalidTransition",
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
