package category

import "errors"

// Sentinel errors for mapping files and categorization.
var (
	// ErrEmptyLabel indicates a mapping group with a blank label.
	ErrEmptyLabel = errors.New("category label is empty")
	// ErrMissingIDColumn indicates the table has no column holding entry IDs.
	ErrMissingIDColumn = errors.New("table has no ID column")
)
