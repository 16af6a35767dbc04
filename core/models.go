package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content fingerprint used to correlate records across log lines.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical messages produce identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SessionID identifies a datastore session inside the server.
// It is not the NETCONF session-id a client sees; see SessionHandle in translate.
type SessionID uint32

// ErrorType is the broad NETCONF error category (the <error-type> element).
type ErrorType string

const (
	ErrorTypeTransport   ErrorType = "transport"
	ErrorTypeRPC         ErrorType = "rpc"
	ErrorTypeProtocol    ErrorType = "protocol"
	ErrorTypeApplication ErrorType = "application"
)

// ValidationErrorRecord is one diagnostic produced by the validation engine.
type ValidationErrorRecord struct {
	Message string
}

// ErrorInfo is a single named <error-info> child.
type ErrorInfo struct {
	Name  string
	Value string
}

// ProtocolError is a NETCONF <rpc-error> ready to be attached to a session.
// AppTag and Path are optional; an empty string means the element is absent.
type ProtocolError struct {
	Type    ErrorType
	Tag     string
	AppTag  string
	Path    string
	Message string
	Info    []ErrorInfo // Ordered; serialized in this order
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e == nil {
		return ""
	}
	return e.Tag + ": " + e.Message
}

// InfoValue returns the value of the first info entry with the given name.
func (e *ProtocolError) InfoValue(name string) (string, bool) {
	for _, info := range e.Info {
		if info.Name == name {
			return info.Value, true
		}
	}
	return "", false
}
