package types

import "fmt"

// ErrorKind classifies an analysis failure.
type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindImageDecode       ErrorKind = "image_decode"
	KindProvider          ErrorKind = "provider"
	KindResponseDecode    ErrorKind = "response_decode"
)

// MissingCredentialMessage is returned for every request while no provider
// key is configured.
const MissingCredentialMessage = "Server: API Key not found"

// ExcerptLimit bounds the provider text echoed back in a decode error.
const ExcerptLimit = 200

// AnalysisError is the only error type an analysis returns.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	// Excerpt holds the start of the unparsable reply (KindResponseDecode only).
	Excerpt string
	Cause   error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// IsDecodeError reports whether the provider answered with text that is not
// a JSON object. All other kinds are processing errors.
func (e *AnalysisError) IsDecodeError() bool {
	return e.Kind == KindResponseDecode
}

func NewMissingCredentialError() *AnalysisError {
	return &AnalysisError{
		Kind:    KindMissingCredential,
		Message: MissingCredentialMessage,
	}
}

func NewImageDecodeError(cause error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindImageDecode,
		Message: fmt.Sprintf("cannot identify image file: %v", cause),
		Cause:   cause,
	}
}

func NewProviderError(cause error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindProvider,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// NewResponseDecodeError keeps only excerpt in the message; callers pass the
// already truncated text.
func NewResponseDecodeError(cause error, excerpt string) *AnalysisError {
	return &AnalysisError{
		Kind:    KindResponseDecode,
		Message: fmt.Sprintf("JSON parse error: %v (text: %s)", cause, excerpt),
		Excerpt: excerpt,
		Cause:   cause,
	}
}
