package usecase

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorValidation   ErrorCode = "VALIDATION_ERROR"
	ErrorTransport    ErrorCode = "TRANSPORT_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// User-facing messages. Nothing else from an Error is returned to callers.
const (
	MsgMessageRequired  = "Message is required"
	MsgInvalidBody      = "Invalid request body"
	MsgProcessFailed    = "Failed to process message"
	MsgFieldsRequired   = "All fields are required"
	MsgInvalidEmail     = "Invalid email address"
	// MsgSendFailed is returned for every transport failure. The provider's
	// own text is only logged, see ProviderDetail.
	MsgSendFailed       = "Failed to send email"
	MsgInternalFailure  = "Internal server error"
	MsgSentSuccessfully = "Email sent successfully"
)

type Error struct {
	Code    ErrorCode
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason, message string, err error) *Error {
	return &Error{Code: code, Reason: reason, Message: message, Err: err}
}
