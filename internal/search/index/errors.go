package index

import "errors"

var (
	// ErrUnsupportedSource indicates an index source with a scheme Load cannot read.
	ErrUnsupportedSource = errors.New("unsupported index source")
	// ErrIndexTooLarge indicates an index body above MaxIndexBytes.
	ErrIndexTooLarge = errors.New("index exceeds size limit")
	// ErrContentDirMissing indicates a build whose content directory does not exist.
	ErrContentDirMissing = errors.New("content directory not found")
)
