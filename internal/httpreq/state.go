package httpreq

import (
	"errors"
	"net/url"

	"github.com/bytedance/sonic"
)

const (
	// RequestFailedMessage is the message of every non success response.
	RequestFailedMessage = "Request failed!"
	// FallbackErrorMessage is used when a failure doesn't have a message.
	FallbackErrorMessage = "Something went wrong!"
)

// State is the observable state of the executor.
type State struct {
	IsLoading bool
	// Error is the message of the last failure, empty when there is none.
	Error string
}

// RequestError is returned when the server answers with a non success status.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string { return RequestFailedMessage }

// Result is the outcome of a request, either the parsed response or an error.
type Result struct {
	// Data is the response body parsed as generic JSON.
	Data any
	// Raw is the unparsed response body.
	Raw        []byte
	StatusCode int
	Err        error
}

// Decode decodes the raw response body into v.
func (r Result) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	return sonic.Unmarshal(r.Raw, v)
}

// ErrorMessage returns the human readable message of a failure as it would be
// set on the executor state. Transport errors are reported without the
// method and URL prefix.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	msg := err.Error()
	if msg == "" {
		return FallbackErrorMessage
	}

	return msg
}
