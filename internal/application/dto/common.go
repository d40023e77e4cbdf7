package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse cuerpo de estados sin datos (ej. {"status":"loading"}).
type StatusResponse struct {
	Status string `json:"status"`
}
