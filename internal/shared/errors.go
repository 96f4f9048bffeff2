package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Asset errors
	ErrAssetUnreadable = fmt.Errorf("asset unreadable")
	ErrAssetInvalid    = fmt.Errorf("asset could not be parsed")
	ErrLoadInProgress  = fmt.Errorf("load already in progress")

	// Storage errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrWordNotFound       = fmt.Errorf("word not found")

	// Board and navigation errors
	ErrItemNotFound   = fmt.Errorf("item not found")
	ErrScreenNotFound = fmt.Errorf("screen not registered")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
