package domain

import "errors"

// Processing run errors
var (
	// ErrEmptyResult means scanning finished without a single employee group.
	ErrEmptyResult = errors.New("no valid records found")
	// ErrDecode means the uploaded bytes could not be opened as a spreadsheet.
	ErrDecode = errors.New("unsupported or corrupt spreadsheet file")

	ErrNoRun         = errors.New("no processed file available")
	ErrRunInProgress = errors.New("a file is already being processed")
)
