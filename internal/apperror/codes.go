package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"

	// Rate limiting on the public API
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
)

// Quote request validation codes
const (
	CodeInvalidCarType  Code = "INVALID_CAR_TYPE"
	CodeInvalidCarUse   Code = "INVALID_CAR_USE"
	CodeInvalidBirthday Code = "INVALID_BIRTHDAY"
	CodeDriverUnderage  Code = "DRIVER_UNDERAGE"
)

// Provider failure codes. These are recovered into a per-provider error
// inside the aggregation and never fail a whole quote request.
const (
	CodeProviderTimeout           Code = "PROVIDER_TIMEOUT"
	CodeProviderHTTPStatus        Code = "PROVIDER_HTTP_STATUS"
	CodeProviderTransportError    Code = "PROVIDER_TRANSPORT_ERROR"
	CodeProviderMalformedResponse Code = "PROVIDER_MALFORMED_RESPONSE"
	CodeProviderCircuitOpen       Code = "PROVIDER_CIRCUIT_OPEN"
)

// Aggregation invariants
const (
	CodeNoProvidersConfigured Code = "NO_PROVIDERS_CONFIGURED"
)
