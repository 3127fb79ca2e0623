package interfaces

import "fmt"

// RPCErrorKind classifies a failed provider call. The classification drives
// the gatherer's recovery policy: only transport-level failures reset the
// cached service connection.
type RPCErrorKind int

const (
	// RPCServiceSpecific is a domain error returned by the remote service,
	// for example an unknown UID. The connection is kept.
	RPCServiceSpecific RPCErrorKind = iota + 1

	// RPCTransactionFailed is a transport-level failure. The cached service
	// connection is dropped so the next attempt reconnects.
	RPCTransactionFailed

	// RPCOther is any other remote failure. The connection is kept.
	RPCOther
)

// String returns a human readable name for the error kind.
func (k RPCErrorKind) String() string {
	switch k {
	case RPCServiceSpecific:
		return "service specific"
	case RPCTransactionFailed:
		return "transaction failed"
	case RPCOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// RPCError is a classified failure of a provider call.
type RPCError struct {
	Kind RPCErrorKind

	// Code is the service-specific error code, if any.
	Code int32

	// Msg is the remote error message.
	Msg string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("provider rpc failed (%s): %s (code %d)", e.Kind, e.Msg, e.Code)
	}
	return fmt.Sprintf("provider rpc failed (%s): %s", e.Kind, e.Msg)
}

// LookupError is returned by the gatherer when all provider attempts are
// exhausted. It carries the opaque keystore response code.
type LookupError struct {
	Code int32
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("attestation application id lookup failed (response code %d)", e.Code)
}
