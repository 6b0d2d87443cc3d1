package handler

// Response is the envelope every endpoint returns. Status is "success" or
// "error"; Data carries the payload and Message the human-readable error.
// Conflict and swap endpoints set both Message and Data on failure so the
// verdict travels with the error.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}
