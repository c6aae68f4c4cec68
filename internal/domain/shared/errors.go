package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that NewDomainError(CodeNotFound, "contact not found")
// satisfies errors.Is(err, ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidState  = "INVALID_STATE"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeUnavailable   = "UNAVAILABLE"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnavailable   = NewDomainError(CodeUnavailable, "Data store temporarily unavailable")
)
