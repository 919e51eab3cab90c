package quote

import "errors"

var (
	// ErrNoText is reported when no page of the document carries extractable text
	ErrNoText = errors.New("document contains no extractable text")

	// ErrNoRows is reported when text was found but no item row was recognized
	ErrNoRows = errors.New("no item rows detected")
)
