package service

type ErrorCode string

const (
	ErrorCodeValidation       ErrorCode = "VALIDATION"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeUpstream         ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrorCodePartial          ErrorCode = "PARTIAL_RECONCILIATION"
	ErrorCodeAlreadyFollowing ErrorCode = "ALREADY_FOLLOWING"
	ErrorCodeUnspecified      ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// CodeOf returns the code of a service error, or "" for nil.
func CodeOf(err *Error) ErrorCode {
	if err == nil {
		return ""
	}
	return err.Code
}
