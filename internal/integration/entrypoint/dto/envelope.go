// Package dto defines data transfer objects for API requests and responses.
package dto

// Response is the envelope every endpoint responds with: exactly one of
// Data or Error is populated.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody carries a stable machine-readable code alongside a
// human-readable message.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Meta carries response metadata that isn't part of the payload itself.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a cursor-paginated list's position.
type Pagination struct {
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"hasMore"`
	Total   *int   `json:"total,omitempty"`
}

// Ok wraps data in a successful envelope with no metadata.
func Ok(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OkWithMeta wraps data in a successful envelope carrying meta.
func OkWithMeta(data interface{}, meta *Meta) Response {
	return Response{Success: true, Data: data, Meta: meta}
}

// Fail wraps a code/message pair in a failed envelope.
func Fail(code, message string) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}

// FailWithDetails wraps a code/message/details triple in a failed envelope.
func FailWithDetails(code, message string, details interface{}) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message, Details: details}}
}
