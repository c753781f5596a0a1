package complexmap

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrLengthMismatch is returned by New when the keys and values don't pair up.
	ErrLengthMismatch errorkit.Error = "complexmap: keys and values must be the same length"
	// ErrDuplicateKey is returned by New when a key is present more than once.
	ErrDuplicateKey errorkit.Error = "complexmap: duplicate key"
	// ErrKeyNotFound is returned when a key has no entry in the map.
	ErrKeyNotFound errorkit.Error = "complexmap: key not found"
	// ErrCursorOutOfRange is the panic reason when the cursor is read while it isn't Valid.
	ErrCursorOutOfRange errorkit.Error = "complexmap: cursor out of range"
)
