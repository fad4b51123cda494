// core/suffixtree/errors.go
package suffixtree

import "errors"

var (
	// ErrInvalidInput rejects empty sequences or symbols outside the
	// declared alphabet. Detected before any construction work begins.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstruction reports a fatal build failure (sentinel pool
	// exhaustion, violated tree invariant). No partial index is returned.
	ErrConstruction = errors.New("construction failed")

	// ErrInvalidPattern rejects degenerate search patterns (empty).
	ErrInvalidPattern = errors.New("invalid pattern")
)
