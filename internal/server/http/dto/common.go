package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse reports liveness and deployment environment.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// ServerStatus carries the advisory order acceptance flag.
type ServerStatus struct {
	Status string `json:"status"`
}
