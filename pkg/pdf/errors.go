package pdf

import "errors"

var (
	// ErrInvalidDocument is returned when the buffer is not a loadable PDF.
	ErrInvalidDocument = errors.New("pdf: not a readable document")

	// ErrPageOutOfRange is returned for page numbers outside [1, PageCount].
	ErrPageOutOfRange = errors.New("pdf: page out of range")

	// ErrClosed is returned when reading from a closed document.
	ErrClosed = errors.New("pdf: document is closed")
)
