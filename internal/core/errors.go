package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRead - config file exists but could not be read (warn and continue with an empty mapping)
	ErrRead = errors.New("config read failed")

	// ErrValidation - a field failed a validator rule (block the save, focus the field)
	ErrValidation = errors.New("invalid key")

	// ErrConfirmationRequired - the save would erase every key (ask before writing)
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrWrite - persisting the config file failed (keep the form, allow retry)
	ErrWrite = errors.New("config write failed")

	// ErrLaunch - the startup script is missing or could not be started (keep the form open)
	ErrLaunch = errors.New("launch failed")

	// ErrLocked - another instance is saving the same file
	ErrLocked = errors.New("config file is locked")
)

// ValidationError names the provider and the rule it broke.
type ValidationError struct {
	Provider ProviderID
	Rule     string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
