package dto

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Meta carries list metadata
type Meta struct {
	Total int `json:"total"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewListResponse creates a success response for a full, unpaginated list
func NewListResponse(data any, total int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total},
	}
}

// NewErrorResponse creates an error response. Domain error codes are
// normalized to the API format.
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    NormalizeErrorCode(code),
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 response listing the rejected fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
