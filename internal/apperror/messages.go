package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:      "Missing required fields",
	CodeInvalidInput:       "Invalid input provided",
	CodeValidationError:    "Validation error",
	CodeConfigurationError: "Configuration error",
	CodeInternalError:      "Internal server error",
	CodeUnknownError:       "An unknown error occurred",
	CodeRateLimitExceeded:  "Rate limit exceeded",

	CodeInvalidCarType:  "Invalid car_type",
	CodeInvalidCarUse:   "Invalid car_use",
	CodeInvalidBirthday: "Invalid driver_birthday",
	CodeDriverUnderage:  "Driver must be at least 18 years old",

	CodeProviderTimeout:           "Request timeout",
	CodeProviderHTTPStatus:        "Unexpected HTTP status",
	CodeProviderTransportError:    "Transport error",
	CodeProviderMalformedResponse: "Malformed response",
	CodeProviderCircuitOpen:       "Provider circuit breaker is open",

	CodeNoProvidersConfigured: "No quote providers configured",
}
