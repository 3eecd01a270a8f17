package api

// Response is the envelope every endpoint returns.
type Response struct {
	Message string       `json:"message" example:"Success"`
	Status  bool         `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
	Data    interface{}  `json:"data"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Response {
	return Response{Message: message, Status: true, Data: data}
}

// Fail builds a failure envelope with an empty data array, matching what
// clients of this API expect on every error path.
func Fail(message string) Response {
	return Response{Message: message, Status: false, Data: []interface{}{}}
}

// ValidationFail builds a failure envelope carrying per-field errors.
func ValidationFail(message string, errs []FieldError) Response {
	return Response{Message: message, Status: false, Errors: errs, Data: []interface{}{}}
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
