package docstore

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when a document does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

var (
	// ErrCorrupt is returned when the primary file is unparseable and no
	// backup exists to recover from.
	ErrCorrupt = errors.New("document corrupt")

	// ErrUnrecoverable is returned when both the primary and the backup
	// are unusable. No further recovery is attempted.
	ErrUnrecoverable = errors.New("document unrecoverable")
)

// decodeError marks a read failure as a parse failure rather than an I/O
// failure. The distinction drives the recovery branch selection: a present
// but unparseable primary is quarantined, a missing one is not.
type decodeError struct {
	name string
	err  error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.name, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }
