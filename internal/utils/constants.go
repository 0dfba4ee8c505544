package utils

const (
	OrganizationName = "Rental Center"
	DefaultAppName   = "rental-service"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// DateLayout is the wire format of every calendar date field.
	DateLayout = "2006-01-02"
)
