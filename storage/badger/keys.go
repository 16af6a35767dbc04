package badger

import (
	"encoding/binary"

	"github.com/poiesic/ncerr/core"
)

// Key prefixes for different data types
const (
	sessionErrorPrefix = "seserr"
	sessionErrorSeq    = "seserrseq"
)

// makeSessionErrorKey generates a composite key for one attached error.
// Format: prefix:sessionID:sequence
func makeSessionErrorKey(session core.SessionID, seq uint64) []byte {
	buf := makePartialSessionErrorKey(session)
	// Write in BigEndian order so lexicographic sort follows attachment order
	return binary.BigEndian.AppendUint64(buf, seq)
}

// makePartialSessionErrorKey generates the key prefix of all errors of a session.
// Format: prefix:sessionID
func makePartialSessionErrorKey(session core.SessionID) []byte {
	prefix := sessionErrorPrefix + ":"
	buf := make([]byte, len(prefix), len(prefix)+4+8) // 4 bytes for session + 8 bytes for sequence
	copy(buf, prefix)
	return binary.BigEndian.AppendUint32(buf, uint32(session))
}
