package dtos

// ValidationErrorDetail is one entry of the details list on a 400.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}
