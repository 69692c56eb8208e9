package moments

import "fmt"

// Error codes carried by the typed errors below. Hosts that bucket errors
// for their own reporting should key on these rather than on messages.
const (
	ValidationErrorCode = 1
	ServerErrorCode     = 2
	DecodingErrorCode   = 3
	NetworkErrorCode    = 4
)

// ValidationError reports bad caller input. It is returned before any
// network traffic happens and is never worth retrying.
type ValidationError struct {
	Message string
}

func (err *ValidationError) Error() string {
	return err.Message
}

func (err *ValidationError) Code() int {
	return ValidationErrorCode
}

// ServerError reports a non-2xx response from the offers endpoint. The
// response body is kept verbatim for diagnostics.
type ServerError struct {
	StatusCode int
	Message    string
}

func (err *ServerError) Error() string {
	return fmt.Sprintf("offers endpoint returned %d: %s", err.StatusCode, err.Message)
}

func (err *ServerError) Code() int {
	return ServerErrorCode
}

// DecodingError reports a response body that could not be parsed into the
// expected shape.
type DecodingError struct {
	Message string
}

func (err *DecodingError) Error() string {
	return err.Message
}

func (err *DecodingError) Code() int {
	return DecodingErrorCode
}

// NetworkError reports a transport-level failure (DNS, refused connection,
// timeout). FetchOffers surfaces these to the caller; FireBeacon swallows
// them after logging, since beacon delivery is best-effort.
type NetworkError struct {
	Message string
}

func (err *NetworkError) Error() string {
	return err.Message
}

func (err *NetworkError) Code() int {
	return NetworkErrorCode
}
