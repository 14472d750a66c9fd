package reconcile

import (
	"errors"
	"fmt"
)

// Error kinds. Every fatal error returned by this module wraps exactly one of them,
// so callers can classify with errors.Is.
var (
	// ErrConfiguration covers missing or invalid mapping files, profiles and properties.
	ErrConfiguration = errors.New("configuration error")
	// ErrConnectivity covers a dataset load, token request or page fetch that cannot reach its target.
	ErrConnectivity = errors.New("connectivity error")
	// ErrProtocol covers unexpected responses from the remote service.
	ErrProtocol = errors.New("protocol error")
	// ErrDataIntegrity covers local or remote data that contradicts the mapping.
	ErrDataIntegrity = errors.New("data integrity error")
)

// Error is a classified failure raised by operation Op.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ConfigurationError wraps err as a configuration error.
func ConfigurationError(op string, err error) error {
	return newError(ErrConfiguration, op, err)
}

// ConnectivityError wraps err as a connectivity error.
func ConnectivityError(op string, err error) error {
	return newError(ErrConnectivity, op, err)
}

// ProtocolError wraps err as a protocol error.
func ProtocolError(op string, err error) error {
	return newError(ErrProtocol, op, err)
}

// DataIntegrityError wraps err as a data integrity error.
func DataIntegrityError(op string, err error) error {
	return newError(ErrDataIntegrity, op, err)
}

// KindOf returns the kind wrapped by err, or nil if err is unclassified.
func KindOf(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrConnectivity, ErrProtocol, ErrDataIntegrity} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
