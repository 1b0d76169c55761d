package contract

import "errors"

var (
	ErrEmptyRequirement = errors.New("requirement text is empty")
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrValidation       = errors.New("validation failed")
)
