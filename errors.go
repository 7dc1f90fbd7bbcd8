package argmine

import "errors"

var (
	// ErrEmptyText is returned when a document is created from blank text.
	ErrEmptyText = errors.New("argmine: empty text")
	// ErrEmptyToken is returned by scorers and lemmatizers given a blank token.
	ErrEmptyToken = errors.New("argmine: empty token")
	// ErrNoModel is returned when labels are requested without a sequence model.
	ErrNoModel = errors.New("argmine: no sequence model")
)
