package validator

import "fmt"

// Kind classifies validator failures for the transport layers
type Kind string

const (
	KindInvalidRequest      Kind = "invalid_request"
	KindInvalidFormat       Kind = "invalid_format"
	KindInvalidConfig       Kind = "invalid_config"
	KindStoreUnavailable    Kind = "store_unavailable"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindInternal            Kind = "internal"
)

// Error carries a failure kind across the package boundary
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind from any error, defaulting to internal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if verr, ok := err.(*Error); ok {
		return verr.Kind
	}
	return KindInternal
}

func errInvalidRequest(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: msg}
}
