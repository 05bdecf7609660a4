package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

// ClassifierError marks a failed semantic classification. It never reaches
// a user: the classifier service catches it and falls back to the keyword
// scan.
type ClassifierError struct {
	ErrorMessage
}

// ExternalServiceError covers ledger and transcription collaborators.
// Transient failures were already retried by the time this surfaces.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewClassifierError(message string) *ClassifierError {
	return &ClassifierError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}
